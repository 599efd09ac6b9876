package xlogpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDiscoverer 创建 Interceptor 时未提供配置发现器
	ErrNilDiscoverer = errors.New("xlogpoint: nil discoverer")

	// ErrBuild 日志点构建失败，具体原因通过 errors.Is 判断
	ErrBuild = errors.New("xlogpoint: build log point failed")

	// ErrNilDescriptor 发现器返回了 nil 描述符
	ErrNilDescriptor = errors.New("xlogpoint: discoverer returned nil descriptor")
)

// PanicError 被包装调用 panic 时用于失败日志与观测的错误
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap panic 值本身是 error 时返回它
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func panicked(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
