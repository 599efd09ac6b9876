package xconv

import "errors"

var (
	// ErrNoTargets 转换器没有声明任何目标类型
	ErrNoTargets = errors.New("xconv: converter has no target types")

	// ErrNilConverter 注册了 nil 转换器
	ErrNilConverter = errors.New("xconv: nil converter")

	// ErrInvalidCacheSize 解析缓存容量非法
	ErrInvalidCacheSize = errors.New("xconv: cache size must be positive")
)
