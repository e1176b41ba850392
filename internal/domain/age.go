// Package domain holds the derived facts computed from stored records:
// ages, display labels for enumerated codes and password-policy checks.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of birth dates
const DateLayout = "2006-01-02"

// UnspecifiedLabel is shown when a birth date is missing
const UnspecifiedLabel = "غير محدد"

// ErrInvalidInput is returned when a birth date is empty, malformed or in the future
var ErrInvalidInput = errors.New("invalid input")

// ParseDate parses a birth date. A full RFC 3339 timestamp is accepted and
// truncated to its calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	if s == "" {
		return time.Time{}, ErrInvalidInput
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return t, nil
}

// civil drops the clock so day arithmetic is not skewed by time zones
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeInYears returns the age in whole years as of today
func AgeInYears(birthDate string) (int, error) {
	return AgeAt(birthDate, time.Now())
}

// AgeAt returns the number of full years between birthDate and now
func AgeAt(birthDate string, now time.Time) (int, error) {
	birth, err := ParseDate(birthDate)
	if err != nil {
		return 0, err
	}
	today := civil(now)
	if birth.After(today) {
		return 0, fmt.Errorf("%w: birth date %s is in the future", ErrInvalidInput, birthDate)
	}

	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years, nil
}

// IsChild reports whether the person is younger than two years.
// Empty or invalid dates are never children.
func IsChild(birthDate string) bool {
	return IsChildAt(birthDate, time.Now())
}

// IsChildAt is IsChild evaluated at now
func IsChildAt(birthDate string, now time.Time) bool {
	years, err := AgeAt(birthDate, now)
	return err == nil && years < 2
}

// DetailedAgeLabel renders the age for display, in days or months below one year
func DetailedAgeLabel(birthDate string) string {
	return DetailedAgeLabelAt(birthDate, time.Now())
}

// DetailedAgeLabelAt renders the age as of now.
//
// Ages of one year or more are whole years. Below that, months and days are
// found by borrowing: a negative day difference borrows the length of the
// previous month. Babies younger than two months are shown as a day count,
// so a 45-day-old reads "45 يوم" and "1 شهر" is never produced; month labels
// start at "2 شهر".
func DetailedAgeLabelAt(birthDate string, now time.Time) string {
	if strings.TrimSpace(birthDate) == "" {
		return UnspecifiedLabel
	}
	years, err := AgeAt(birthDate, now)
	if err != nil {
		return UnspecifiedLabel
	}
	if years >= 1 {
		return fmt.Sprintf("%d سنة", years)
	}

	birth, _ := ParseDate(birthDate)
	today := civil(now)

	months := (today.Year()-birth.Year())*12 + int(today.Month()) - int(birth.Month())
	days := today.Day() - birth.Day()
	if days < 0 {
		months--
		// day 0 of the current month is the last day of the previous one
		days += time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
	}

	if months < 2 {
		total := int(today.Sub(birth).Hours() / 24)
		return fmt.Sprintf("%d يوم", total)
	}
	if days == 0 {
		return fmt.Sprintf("%d شهر", months)
	}
	return fmt.Sprintf("%d شهر و %d يوم", months, days)
}
