package xlevel

// Scope 一层声明作用域（如声明类型、包）。
//
// Enclosing 指向词法上更外一层的作用域，nil 表示链的末端。
// Scope 构建后不应再修改，多个描述符可以共享同一条链。
type Scope struct {
	Name       string
	Level      Level
	ThrowLevel Level
	Enclosing  *Scope
}

// Resolve 沿作用域链解析级别。
//
// own 为操作自身声明的级别；若为 DERIVED，则依次检查 scope 及其外层，
// 使用 pick 取出每层的候选级别，遇到第一个非 DERIVED 即返回；否则返回 fallback。
func Resolve(own Level, scope *Scope, pick func(*Scope) Level, fallback Level) Level {
	if own != LevelDerived {
		return own
	}
	for s := scope; s != nil; s = s.Enclosing {
		if l := pick(s); l != LevelDerived {
			return l
		}
	}
	return fallback
}

// ResolveLevel 解析普通调用级别，默认 [DefaultLevel]。
func ResolveLevel(own Level, scope *Scope) Level {
	return Resolve(own, scope, func(s *Scope) Level { return s.Level }, DefaultLevel)
}

// ResolveThrowLevel 解析异常级别，默认 [DefaultThrowLevel]。
func ResolveThrowLevel(own Level, scope *Scope) Level {
	return Resolve(own, scope, func(s *Scope) Level { return s.ThrowLevel }, DefaultThrowLevel)
}

// Chain 返回从 s 开始向外的作用域名称，便于诊断输出。
func (s *Scope) Chain() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.Enclosing {
		names = append(names, cur.Name)
	}
	return names
}
