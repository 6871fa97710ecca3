package transaction

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Date is a calendar day stored as "YYYY-MM-DD" text.
type Date string

// ParseDate checks that s is a real calendar day in DateLayout.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("date must look like YYYY-MM-DD: %q", s)
	}
	return Date(s), nil
}

// DateOf formats t as a Date.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func Today() Date {
	return DateOf(time.Now())
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Month returns the "YYYY-MM" prefix of d, or "" when d is too short.
func (d Date) Month() string {
	if len(d) < len(MonthLayout) {
		return ""
	}
	return string(d[:len(MonthLayout)])
}

func (d Date) String() string {
	return string(d)
}

// ParseMonth checks that s looks like "YYYY-MM".
func ParseMonth(s string) (string, error) {
	if _, err := time.Parse(MonthLayout, s); err != nil {
		return "", fmt.Errorf("month must look like YYYY-MM: %q", s)
	}
	return s, nil
}
