package xlevel_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
)

// enablerFunc 测试用 Enabler
type enablerFunc func(xlevel.Level) bool

func (f enablerFunc) Enabled(_ context.Context, l xlevel.Level) bool { return f(l) }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  xlevel.Level
		err   bool
	}{
		{"", xlevel.LevelDerived, false},
		{"derived", xlevel.LevelDerived, false},
		{"_DERIVED_", xlevel.LevelDerived, false},
		{"off", xlevel.LevelOff, false},
		{"ERROR", xlevel.LevelError, false},
		{"warn", xlevel.LevelWarn, false},
		{"Warning", xlevel.LevelWarn, false},
		{" info ", xlevel.LevelInfo, false},
		{"debug", xlevel.LevelDebug, false},
		{"trace", xlevel.LevelTrace, false},
		{"ALL", xlevel.LevelAll, false},
		{"verbose", xlevel.LevelDerived, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := xlevel.ParseLevel(tt.input)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, xlevel.ErrUnknownLevel))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for l := xlevel.LevelDerived; l <= xlevel.LevelAll; l++ {
		data, err := l.MarshalText()
		require.NoError(t, err)

		var got xlevel.Level
		require.NoError(t, got.UnmarshalText(data))
		assert.Equal(t, l, got)
	}

	_, err := xlevel.Level(42).MarshalText()
	assert.ErrorIs(t, err, xlevel.ErrUnknownLevel)
	assert.Equal(t, "Level(42)", xlevel.Level(42).String())
}

func TestLevel_Slog(t *testing.T) {
	assert.Equal(t, slog.LevelError, xlevel.LevelError.Slog())
	assert.Equal(t, slog.LevelWarn, xlevel.LevelWarn.Slog())
	assert.Equal(t, slog.LevelInfo, xlevel.LevelInfo.Slog())
	assert.Equal(t, slog.LevelDebug, xlevel.LevelDebug.Slog())
	assert.Equal(t, xlevel.SlogLevelTrace, xlevel.LevelTrace.Slog())
	// ALL 以最详细级别输出
	assert.Equal(t, xlevel.SlogLevelTrace, xlevel.LevelAll.Slog())
	assert.Greater(t, xlevel.LevelOff.Slog(), slog.LevelError)
}

func TestIsEnabled(t *testing.T) {
	ctx := context.Background()
	onlyInfo := enablerFunc(func(l xlevel.Level) bool { return l == xlevel.LevelInfo })
	never := enablerFunc(func(xlevel.Level) bool { return false })

	assert.True(t, xlevel.IsEnabled(ctx, onlyInfo, xlevel.LevelInfo))
	assert.False(t, xlevel.IsEnabled(ctx, onlyInfo, xlevel.LevelDebug))

	// OFF 恒禁用，即使 sink 全开
	always := enablerFunc(func(xlevel.Level) bool { return true })
	assert.False(t, xlevel.IsEnabled(ctx, always, xlevel.LevelOff))
	assert.False(t, xlevel.IsEnabled(ctx, always, xlevel.LevelDerived))

	// ALL 恒启用，即使 sink 全关
	assert.True(t, xlevel.IsEnabled(ctx, never, xlevel.LevelAll))
	assert.True(t, xlevel.IsEnabled(ctx, nil, xlevel.LevelAll))
	assert.False(t, xlevel.IsEnabled(ctx, nil, xlevel.LevelError))
}
