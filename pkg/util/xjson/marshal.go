package xjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const indent = "  "

// Pretty 两空格缩进的 JSON，HTML 字符不转义，"<nil>" 等渲染结果原样可读。
// json.RawMessage 只重排缩进，保留原有键序。
func Pretty(v any) (string, error) {
	var buf bytes.Buffer
	if raw, ok := v.(json.RawMessage); ok {
		if err := json.Indent(&buf, raw, "", indent); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMarshal, err)
		}
		return buf.String(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
