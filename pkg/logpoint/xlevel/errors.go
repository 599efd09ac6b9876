package xlevel

import "errors"

// ErrUnknownLevel 表示无法识别的级别名称。
var ErrUnknownLevel = errors.New("xlevel: unknown level")
