package xconf

import "errors"

// 目录加载和解析相关错误。
var (
	// ErrEmptyPath 表示目录文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty catalog path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示目录文件读取失败。
	ErrLoadFailed = errors.New("xconf: failed to load catalog")

	// ErrParseFailed 表示目录内容解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse catalog")

	// ErrUnmarshalFailed 表示目录反序列化失败（含非法级别、策略名）。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal catalog")

	// ErrInvalidScope 表示作用域声明非法：名称为空、重名或 enclosing 成环。
	ErrInvalidScope = errors.New("xconf: invalid scope")

	// ErrUnknownScope 表示引用了未声明的作用域。
	ErrUnknownScope = errors.New("xconf: unknown scope")

	// ErrInvalidOperation 表示操作声明非法：名称为空或重复。
	ErrInvalidOperation = errors.New("xconf: invalid operation")
)
