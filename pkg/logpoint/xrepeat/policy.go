package xrepeat

import (
	"fmt"
	"strings"
	"time"
)

// Policy 重复输出限制策略。零值为 [PolicyAll]。
type Policy int

// 策略常量。
const (
	PolicyAll Policy = iota
	PolicyOnce
	PolicyOncePerSecond
	PolicyOncePerMinute
	PolicyOncePerHour
	PolicyOncePerDay
)

var policyNames = [...]string{
	PolicyAll:           "ALL",
	PolicyOnce:          "ONCE",
	PolicyOncePerSecond: "ONCE_PER_SECOND",
	PolicyOncePerMinute: "ONCE_PER_MINUTE",
	PolicyOncePerHour:   "ONCE_PER_HOUR",
	PolicyOncePerDay:    "ONCE_PER_DAY",
}

// String 返回策略名称。
func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Window 返回固定窗口策略的窗口长度，其余策略返回 0。
func (p Policy) Window() time.Duration {
	switch p {
	case PolicyOncePerSecond:
		return time.Second
	case PolicyOncePerMinute:
		return time.Minute
	case PolicyOncePerHour:
		return time.Hour
	case PolicyOncePerDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (p Policy) MarshalText() ([]byte, error) {
	if p < PolicyAll || p > PolicyOncePerDay {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (p *Policy) UnmarshalText(data []byte) error {
	parsed, err := ParsePolicy(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy 解析策略名称（大小写不敏感，"-" 与 "_" 等价，空串为 ALL）。
func ParsePolicy(s string) (Policy, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	if normalized == "" {
		return PolicyAll, nil
	}
	for i, name := range policyNames {
		if name == normalized {
			return Policy(i), nil
		}
	}
	return PolicyAll, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
