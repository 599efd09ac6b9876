package xconf

// Options 定义目录加载选项。
type Options struct {
	// Strict 为 true 时目录中出现未知字段视为错误，默认忽略。
	Strict bool
}

// Option 定义配置选项函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{}
}

// WithStrict 拒绝未知字段，便于发现拼写错误（如 "throwlevel"）。
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}
