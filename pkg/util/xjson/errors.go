package xjson

import "errors"

// ErrMarshal 序列化失败
var ErrMarshal = errors.New("xjson: marshal failed")
