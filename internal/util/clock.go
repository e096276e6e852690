package util

import "time"

// Clock 当前时间来源，测试中可替换
type Clock func() time.Time

// DateKey 返回 t 在 loc 时区下的 YYYY-MM-DD
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateFormat)
}

// FixedClock 返回固定时间，用于测试
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
