package xlog

import "log/slog"

// 日志点输出使用的属性名
const (
	KeyLogger    = "logger"    // 日志点所属 logger 名称
	KeyOperation = "operation" // 操作 key，如 shop.Cart.add
	KeyParam     = "param"     // 参数名
	KeyError     = "error"
	KeyComponent = "component" // 内部诊断来源
)

// Err 错误属性，nil 得到空属性，slog 不输出
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

func LoggerName(name string) slog.Attr { return slog.String(KeyLogger, name) }

func Operation(key string) slog.Attr { return slog.String(KeyOperation, key) }

func Param(name string) slog.Attr { return slog.String(KeyParam, name) }

func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
