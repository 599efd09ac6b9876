package xconf

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xrepeat"
)

// =============================================================================
// 文件结构
// =============================================================================

type fileCatalog struct {
	Scopes     []fileScope     `koanf:"scopes"`
	Operations []fileOperation `koanf:"operations"`
}

type fileScope struct {
	Name       string       `koanf:"name"`
	Level      xlevel.Level `koanf:"level"`
	ThrowLevel xlevel.Level `koanf:"throw_level"`
	Enclosing  string       `koanf:"enclosing"`
}

type fileOperation struct {
	Type       string         `koanf:"type"`
	Name       string         `koanf:"name"`
	Scope      string         `koanf:"scope"`
	Message    string         `koanf:"message"`
	Level      xlevel.Level   `koanf:"level"`
	ThrowLevel xlevel.Level   `koanf:"throw_level"`
	Logger     string         `koanf:"logger"`
	JSON       xop.JSONDetail `koanf:"json"`
	Repeat     xrepeat.Policy `koanf:"repeat"`
	Returns    bool           `koanf:"returns"`
	Params     []fileParam    `koanf:"params"`
}

type fileParam struct {
	Name       string `koanf:"name"`
	Context    string `koanf:"context"`
	Expression string `koanf:"expression"`
	DontLog    bool   `koanf:"dont_log"`
	Throwable  bool   `koanf:"throwable"`
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog 从目录文件加载的日志点描述符集合，实现 xop.Discoverer。
type Catalog struct {
	scopes map[string]*xlevel.Scope
	ops    map[string]*xop.Descriptor
	order  []xop.Operation
}

var _ xop.Discoverer = (*Catalog)(nil)

// LoadFile 从文件加载目录，格式由扩展名决定。
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Load(data, format, opts...)
}

// Load 从字节数据加载目录。空数据得到空目录。
func Load(data []byte, format Format, opts ...Option) (*Catalog, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	k, err := loadData(data, format)
	if err != nil {
		return nil, err
	}

	var file fileCatalog
	if err := unmarshal(k, &file, options.Strict); err != nil {
		return nil, err
	}

	scopes, err := linkScopes(file.Scopes)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		scopes: scopes,
		ops:    make(map[string]*xop.Descriptor, len(file.Operations)),
		order:  make([]xop.Operation, 0, len(file.Operations)),
	}
	for i, fo := range file.Operations {
		d, err := c.descriptor(fo)
		if err != nil {
			return nil, fmt.Errorf("operations[%d]: %w", i, err)
		}
		key := d.Operation.Key()
		if _, dup := c.ops[key]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidOperation, key)
		}
		c.ops[key] = d
		c.order = append(c.order, d.Operation)
	}
	return c, nil
}

func unmarshal(k *koanf.Koanf, out *fileCatalog, strict bool) error {
	conf := koanf.UnmarshalConf{Tag: "koanf"}
	if strict {
		conf.DecoderConfig = &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc()),
			Result:           out,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		}
	}
	if err := k.UnmarshalWithConf("", out, conf); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// linkScopes 建立名称到作用域的映射并链接 enclosing，拒绝重名与成环。
func linkScopes(decls []fileScope) (map[string]*xlevel.Scope, error) {
	scopes := make(map[string]*xlevel.Scope, len(decls))
	for _, fs := range decls {
		if fs.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidScope)
		}
		if _, dup := scopes[fs.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidScope, fs.Name)
		}
		scopes[fs.Name] = &xlevel.Scope{Name: fs.Name, Level: fs.Level, ThrowLevel: fs.ThrowLevel}
	}

	for _, fs := range decls {
		if fs.Enclosing == "" {
			continue
		}
		outer, ok := scopes[fs.Enclosing]
		if !ok {
			return nil, fmt.Errorf("%w: %s (enclosing of %s)", ErrUnknownScope, fs.Enclosing, fs.Name)
		}
		scopes[fs.Name].Enclosing = outer
	}

	// 链长不会超过作用域总数，超过即成环
	for _, s := range scopes {
		n := 0
		for cur := s; cur != nil; cur = cur.Enclosing {
			if n++; n > len(scopes) {
				return nil, fmt.Errorf("%w: cycle through %s", ErrInvalidScope, s.Name)
			}
		}
	}
	return scopes, nil
}

func (c *Catalog) descriptor(fo fileOperation) (*xop.Descriptor, error) {
	if fo.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidOperation)
	}

	var scope *xlevel.Scope
	switch {
	case fo.Scope != "":
		s, ok := c.scopes[fo.Scope]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScope, fo.Scope)
		}
		scope = s
	case fo.Type != "":
		scope = c.scopes[fo.Type]
	}

	d := &xop.Descriptor{
		Operation:  xop.Operation{Type: fo.Type, Name: fo.Name},
		Message:    fo.Message,
		Level:      fo.Level,
		ThrowLevel: fo.ThrowLevel,
		Scope:      scope,
		Logger:     fo.Logger,
		JSON:       fo.JSON,
		Repeat:     fo.Repeat,
		Returns:    fo.Returns,
		Params:     make([]xop.Parameter, len(fo.Params)),
	}
	for i, fp := range fo.Params {
		d.Params[i] = xop.Parameter{
			Name:       fp.Name,
			Index:      i,
			DontLog:    fp.DontLog,
			Throwable:  fp.Throwable,
			ContextKey: fp.Context,
			Expression: fp.Expression,
		}
	}
	return d, nil
}

// Describe 实现 xop.Discoverer，未声明的操作返回 xop.ErrUnknownOperation。
func (c *Catalog) Describe(op xop.Operation) (*xop.Descriptor, error) {
	d, ok := c.ops[op.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", xop.ErrUnknownOperation, op)
	}
	return d, nil
}

// Operations 按声明顺序返回全部操作。
func (c *Catalog) Operations() []xop.Operation {
	return slices.Clone(c.order)
}

// Scope 按名称返回作用域。
func (c *Catalog) Scope(name string) (*xlevel.Scope, bool) {
	s, ok := c.scopes[name]
	return s, ok
}
