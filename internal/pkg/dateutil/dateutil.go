package dateutil

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

const Layout = "2006-01-02"

var (
	ErrFormat   = errors.New("date must be in format YYYY-MM-DD")
	ErrNotReal  = errors.New("date is not a real calendar date")
	ErrInFuture = errors.New("date lies in the future")
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParsePastDate validates a YYYY-MM-DD string that must name a real day no
// later than today in UTC.
func ParsePastDate(value string, now time.Time) (time.Time, error) {
	if !dateRegex.MatchString(value) {
		return time.Time{}, ErrFormat
	}
	year, _ := strconv.Atoi(value[0:4])
	month, _ := strconv.Atoi(value[5:7])
	day, _ := strconv.Atoi(value[8:10])
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, ErrNotReal
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	ny, nm, nd := now.UTC().Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return time.Time{}, ErrInFuture
	}
	return date, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
