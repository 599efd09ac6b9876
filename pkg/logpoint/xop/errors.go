package xop

import "errors"

var (
	// ErrEmptyOperation 表示操作标识缺少名称。
	ErrEmptyOperation = errors.New("xop: operation name is empty")

	// ErrParamIndex 表示参数的 Index 与其在列表中的位置不一致。
	ErrParamIndex = errors.New("xop: parameter index does not match its position")

	// ErrUnknownOperation 表示发现器中没有该操作的描述。
	ErrUnknownOperation = errors.New("xop: unknown operation")

	// ErrUnknownDetail 表示无法识别的 JSON 详情类别。
	ErrUnknownDetail = errors.New("xop: unknown json detail")
)
