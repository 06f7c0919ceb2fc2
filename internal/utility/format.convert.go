package utility

import (
	"time"
)

// NowUnixMilli trả về thời điểm hiện tại theo Unix milliseconds.
// Toàn bộ timestamp trong hệ thống (event time, session start) dùng đơn vị này.
func NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// FormatUnixMilli format Unix milliseconds thành chuỗi hiển thị "02/01/2006 15:04"
func FormatUnixMilli(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("02/01/2006 15:04")
}

// StartOfDayUnixMilli trả về 00:00:00 của ngày chứa ms (theo local time)
func StartOfDayUnixMilli(ms int64) int64 {
	t := time.UnixMilli(ms)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start.UnixMilli()
}

// HourOfDay trả về giờ trong ngày (0-23) của timestamp ms theo local time
func HourOfDay(ms int64) int {
	return time.UnixMilli(ms).Hour()
}
