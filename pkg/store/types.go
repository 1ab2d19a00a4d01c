package store

import (
	"fmt"
	"strings"
	"time"
)

// Credentials identify a Pixela user.
type Credentials struct {
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

// Complete returns true when both username and token are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Token != ""
}

// Trimmed returns a copy with surrounding whitespace removed from both fields.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		Username: strings.TrimSpace(c.Username),
		Token:    strings.TrimSpace(c.Token),
	}
}

// Date is a calendar day with no time-of-day or zone semantics.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in the local time zone.
func Today() Date {
	return DateOf(time.Now())
}

// Pixel formats the date as the YYYYMMDD bucket used by the remote API.
func (d Date) Pixel() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

var dateLayouts = []string{"2006-01-02", "20060102", "2006/01/02"}

// ParseDate parses YYYY-MM-DD, YYYYMMDD, YYYY/MM/DD and the words "today" and
// "yesterday", relative to today.
func ParseDate(input string, today Date) (Date, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateOf(t), nil
		}
	}
	return today, fmt.Errorf("invalid date %q", input)
}
