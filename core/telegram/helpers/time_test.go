package helpers

import (
	"testing"
	"time"
)

func TestParseDayMonthYear(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"15.06.2000", time.Date(2000, time.June, 15, 0, 0, 0, 0, time.Local), true},
		{"5.6.2000", time.Date(2000, time.June, 5, 0, 0, 0, 0, time.Local), true},
		{"01.01.1970", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.Local), true},
		{"  15.06.2000  ", time.Date(2000, time.June, 15, 0, 0, 0, 0, time.Local), true},
		{"2000-06-15", time.Time{}, false},
		{"15/06/2000", time.Time{}, false},
		{"32.01.2000", time.Time{}, false},
		{"15.13.2000", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseDayMonthYear(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseDayMonthYear(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("ParseDayMonthYear(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
