package xdetail_test

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xdetail"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
)

var fixedTime = time.Date(2026, 3, 4, 5, 6, 7, 800, time.FixedZone("CET", 3600))

func TestBuild_EventMetadata(t *testing.T) {
	got := xdetail.Build(xdetail.Input{
		Detail: xop.JSONEvent,
		Time:   fixedTime,
		Event:  "charge",
		Logger: "billing.Service",
		Level:  xlevel.LevelInfo,
	})
	assert.Equal(t,
		`{"timestamp":"2026-03-04T04:06:07.0000008Z","event":"charge","logger":"billing.Service","level":"info"}`,
		got)
}

func TestBuild_EmptyDetail(t *testing.T) {
	assert.Equal(t, "{}", xdetail.Build(xdetail.Input{Event: "x"}))
}

func TestBuild_OrderAndOverwrite(t *testing.T) {
	m := xmdc.New()
	m.Set("user", "ann")
	m.Set("event", "from-context")
	m.Set(xmdc.KeyJSON, `{"stale":true}`)

	got := xdetail.Build(xdetail.Input{
		Detail:  xop.JSONAll,
		Time:    fixedTime,
		Event:   "charge",
		Logger:  "billing",
		Level:   xlevel.LevelDebug,
		Context: m,
		Params:  []xop.Parameter{{Name: "user"}, {Name: "amount"}},
		Values:  []any{"bob", 12.5},
	})

	assert.Equal(t,
		`{"timestamp":"2026-03-04T04:06:07.0000008Z","event":"from-context","logger":"billing","level":"debug","user":"bob","amount":12.5}`,
		got)
}

func TestBuild_ValueClassification(t *testing.T) {
	params := []xop.Parameter{
		{Name: "flag"}, {Name: "count"}, {Name: "ratio"}, {Name: "nan"},
		{Name: "text"}, {Name: "missing"}, {Name: "hidden", DontLog: true}, {Name: "u"},
		{Name: "lvl"}, {Name: "wait"}, {Name: "code"},
	}
	got := xdetail.Build(xdetail.Input{
		Detail: xop.JSONParameters,
		Params: params,
		Values: []any{true, -3, 0.25, math.Inf(1), "a\"b\\c\r\n中", nil, "secret", uint8(7),
			xlevel.LevelInfo, 1500 * time.Millisecond, errCode(404)},
	})
	assert.Equal(t,
		`{"flag":true,"count":-3,"ratio":0.25,"nan":"+Inf","text":"a\"b\\c\r\n中","u":7,`+
			`"lvl":"INFO","wait":"1.5s","code":"status 404","code-stacktrace":"[]"}`,
		got)
	assert.NotContains(t, got, "missing")
	assert.NotContains(t, got, "secret")
}

// errCode 底层为整数的错误类型
type errCode int

func (e errCode) Error() string { return fmt.Sprintf("status %d", int(e)) }

type Customer struct{ ID string }

func TestBuild_ExpressionAndConversion(t *testing.T) {
	reg, err := xconv.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Register(xconv.Func("customer", func(c Customer) any { return "C-" + c.ID })))

	got := xdetail.Build(xdetail.Input{
		Detail:    xop.JSONParameters,
		Params:    []xop.Parameter{{Name: "customer"}, {Name: "id", Expression: "iD"}},
		Values:    []any{Customer{ID: "1"}, Customer{ID: "2"}},
		Converter: reg,
	})
	assert.Equal(t, `{"customer":"C-1","id":"2"}`, got)
}

func TestBuild_ErrorStackTrace(t *testing.T) {
	withStack := errors.New("boom")
	plain := fmt.Errorf("plain")

	got := xdetail.Build(xdetail.Input{
		Detail: xop.JSONParameters,
		Params: []xop.Parameter{{Name: "err"}, {Name: "other"}},
		Values: []any{fmt.Errorf("wrapped: %w", withStack), plain},
	})

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &m))
	assert.Equal(t, "wrapped: boom", m["err"])
	trace, ok := m["err-stacktrace"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(trace, "[TestBuild_ErrorStackTrace(detail_test.go:"), trace)
	assert.Equal(t, "[]", m["other-stacktrace"])
}

func TestStackTrace(t *testing.T) {
	assert.Equal(t, "[]", xdetail.StackTrace(nil))
	assert.Equal(t, "[]", xdetail.StackTrace(fmt.Errorf("x")))

	joined := fmt.Errorf("%w and %w", errors.New("first"), fmt.Errorf("second"))
	assert.NotEqual(t, "[]", xdetail.StackTrace(joined))
	assert.Contains(t, xdetail.StackTrace(errors.WithStack(fmt.Errorf("x"))), "TestStackTrace")
}
