package xlevel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
)

func TestResolveLevel(t *testing.T) {
	pkg := &xlevel.Scope{Name: "billing", Level: xlevel.LevelInfo}
	typ := &xlevel.Scope{Name: "billing.Service", Enclosing: pkg}
	inner := &xlevel.Scope{Name: "billing.Service.retry", Level: xlevel.LevelWarn, Enclosing: typ}

	tests := []struct {
		name  string
		own   xlevel.Level
		scope *xlevel.Scope
		want  xlevel.Level
	}{
		{"own wins", xlevel.LevelTrace, inner, xlevel.LevelTrace},
		{"nearest scope", xlevel.LevelDerived, inner, xlevel.LevelWarn},
		{"skips derived scope", xlevel.LevelDerived, typ, xlevel.LevelInfo},
		{"baseline", xlevel.LevelDerived, &xlevel.Scope{Name: "bare"}, xlevel.DefaultLevel},
		{"nil scope", xlevel.LevelDerived, nil, xlevel.DefaultLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xlevel.ResolveLevel(tt.own, tt.scope))
		})
	}
}

func TestResolveThrowLevel_IndependentChain(t *testing.T) {
	outer := &xlevel.Scope{Name: "outer", Level: xlevel.LevelTrace}
	typ := &xlevel.Scope{Name: "type", Enclosing: outer}

	// 普通级别链上的声明不影响异常级别
	assert.Equal(t, xlevel.LevelTrace, xlevel.ResolveLevel(xlevel.LevelDerived, typ))
	assert.Equal(t, xlevel.DefaultThrowLevel, xlevel.ResolveThrowLevel(xlevel.LevelDerived, typ))

	outer.ThrowLevel = xlevel.LevelWarn
	assert.Equal(t, xlevel.LevelWarn, xlevel.ResolveThrowLevel(xlevel.LevelDerived, typ))
	assert.Equal(t, xlevel.LevelInfo, xlevel.ResolveThrowLevel(xlevel.LevelInfo, typ))
}

func TestScope_Chain(t *testing.T) {
	outer := &xlevel.Scope{Name: "outer"}
	inner := &xlevel.Scope{Name: "inner", Enclosing: outer}
	assert.Equal(t, []string{"inner", "outer"}, inner.Chain())

	var nilScope *xlevel.Scope
	assert.Empty(t, nilScope.Chain())
}
