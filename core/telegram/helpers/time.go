package helpers

import (
	"strings"
	"time"
)

var dayMonthYearLayouts = []string{
	"02.01.2006",
	"2.1.2006",
}

// ParseDayMonthYear parses a date in the dd.mm.yyyy form used in Telegram flows.
// Single-digit day and month are accepted; any other layout is rejected.
func ParseDayMonthYear(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayMonthYearLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
