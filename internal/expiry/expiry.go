package expiry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidityYears is the fixed card validity applied at issuance.
const ValidityYears = 3

// Face returns the MM/YY card-face string for a month and full year.
func Face(month time.Month, year int) string {
	return fmt.Sprintf("%02d/%02d", int(month), year%100)
}

// ParseFace accepts "MM/YY" or "MMYY" and returns the month and full year
// (YY is anchored to 2000).
func ParseFace(in string) (time.Month, int, error) {
	s := strings.TrimSpace(in)
	s = strings.ReplaceAll(s, "/", "")
	if len(s) != 4 {
		return 0, 0, fmt.Errorf("card face must be MM/YY or MMYY")
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("card face must be digits")
		}
	}
	mm, _ := strconv.Atoi(s[:2])
	if mm < 1 || mm > 12 {
		return 0, 0, fmt.Errorf("month must be 01..12")
	}
	yy, _ := strconv.Atoi(s[2:])
	return time.Month(mm), 2000 + yy, nil
}

// EndOfMonth returns the last instant of the given month in loc.
func EndOfMonth(month time.Month, year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	firstNext := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond)
}

// IsExpired reports whether 'at' is strictly after the end of the card-face
// month.
func IsExpired(face string, at time.Time) (bool, error) {
	month, year, err := ParseFace(face)
	if err != nil {
		return false, err
	}
	end := EndOfMonth(month, year, time.UTC)
	return at.In(time.UTC).After(end), nil
}
