package xop

// Operation 一个被记录调用点的标识。
//
// Type 为声明类型（或包）的限定名，Name 为方法/函数名。
// Key() 作为日志点缓存的键，在进程内应唯一且稳定。
type Operation struct {
	Type string
	Name string
}

// Key 返回缓存键 "Type.Name"，Type 为空时只返回 Name。
func (o Operation) Key() string {
	if o.Type == "" {
		return o.Name
	}
	return o.Type + "." + o.Name
}

// String 等同于 Key。
func (o Operation) String() string {
	return o.Key()
}
