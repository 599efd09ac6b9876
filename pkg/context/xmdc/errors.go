package xmdc

import "errors"

// ErrNilContext 表示传入的 context 为 nil。
var ErrNilContext = errors.New("xmdc: nil context")
