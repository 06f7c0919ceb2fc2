package utility

import (
	"testing"
	"time"
)

func TestFormatUnixMilli(t *testing.T) {
	ms := time.Date(2026, 3, 15, 9, 30, 0, 0, time.Local).UnixMilli()
	got := FormatUnixMilli(ms)
	if got != "15/03/2026 09:30" {
		t.Errorf("FormatUnixMilli trả về %q, muốn %q", got, "15/03/2026 09:30")
	}

	if FormatUnixMilli(0) != "" {
		t.Error("FormatUnixMilli(0) phải trả về chuỗi rỗng")
	}
}

func TestStartOfDayUnixMilli(t *testing.T) {
	noon := time.Date(2026, 3, 15, 12, 34, 56, 0, time.Local)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local).UnixMilli()

	if got := StartOfDayUnixMilli(noon.UnixMilli()); got != want {
		t.Errorf("StartOfDayUnixMilli = %d, muốn %d", got, want)
	}
	// Mốc đầu ngày là fixpoint
	if got := StartOfDayUnixMilli(want); got != want {
		t.Errorf("StartOfDayUnixMilli trên mốc đầu ngày = %d, muốn giữ nguyên %d", got, want)
	}
}

func TestHourOfDay(t *testing.T) {
	cases := []struct {
		hour int
	}{
		{0}, {9}, {23},
	}
	for _, c := range cases {
		ms := time.Date(2026, 3, 15, c.hour, 30, 0, 0, time.Local).UnixMilli()
		if got := HourOfDay(ms); got != c.hour {
			t.Errorf("HourOfDay giờ %d trả về %d", c.hour, got)
		}
	}
}
