package xop

import (
	"fmt"
	"strings"
)

// JSONDetail JSON 详情类别的位集合。零值表示不输出 JSON。
type JSONDetail uint8

// JSON 详情类别。
const (
	// JSONEvent 事件元数据：timestamp、event、logger、level
	JSONEvent JSONDetail = 1 << iota
	// JSONParameters 每个未被屏蔽的参数
	JSONParameters
	// JSONContext 当前诊断上下文的全部条目
	JSONContext

	// JSONAll 全部类别
	JSONAll = JSONEvent | JSONParameters | JSONContext
)

// Has 报告 d 是否包含类别 c。
func (d JSONDetail) Has(c JSONDetail) bool {
	return d&c == c && c != 0
}

// String 返回逗号分隔的类别名，零值为 "none"。
func (d JSONDetail) String() string {
	if d == 0 {
		return "none"
	}
	var names []string
	if d.Has(JSONEvent) {
		names = append(names, "event")
	}
	if d.Has(JSONParameters) {
		names = append(names, "parameters")
	}
	if d.Has(JSONContext) {
		names = append(names, "context")
	}
	return strings.Join(names, ",")
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (d JSONDetail) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (d *JSONDetail) UnmarshalText(data []byte) error {
	parsed, err := ParseJSONDetail(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseJSONDetail 解析逗号分隔的类别列表（大小写不敏感）。
//
// 支持 event、parameters（params）、context、all、none；空串等同 none。
func ParseJSONDetail(s string) (JSONDetail, error) {
	var d JSONDetail
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "none":
		case "event":
			d |= JSONEvent
		case "parameters", "params":
			d |= JSONParameters
		case "context":
			d |= JSONContext
		case "all":
			d |= JSONAll
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownDetail, part)
		}
	}
	return d, nil
}
