package xrepeat

import "errors"

// ErrUnknownPolicy 表示无法识别的重复策略名称。
var ErrUnknownPolicy = errors.New("xrepeat: unknown repeat policy")
