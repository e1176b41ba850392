package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var refNow = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		want      int
		wantErr   bool
	}{
		{"birthday today", "1990-10-18", 36, false},
		{"birthday tomorrow", "1990-10-19", 35, false},
		{"birthday yesterday", "1990-10-17", 36, false},
		{"later month", "1990-11-01", 35, false},
		{"newborn", "2026-10-18", 0, false},
		{"timestamp input", "2000-01-01T00:00:00Z", 26, false},
		{"empty", "", 0, true},
		{"malformed", "18/10/1990", 0, true},
		{"future", "2027-01-01", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AgeAt(tt.birthDate, refNow)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("AgeAt() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AgeAt() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AgeAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgeAnniversaryProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("age is N on the anniversary and N-1 the day before", prop.ForAll(
		func(years, year, month, day int) bool {
			now := time.Date(year, time.Month(month), day, 9, 0, 0, 0, time.UTC)
			birth := time.Date(year-years, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout)

			onDay, err := AgeAt(birth, now)
			if err != nil || onDay != years {
				return false
			}
			dayBefore, err := AgeAt(birth, now.AddDate(0, 0, -1))
			return err == nil && dayBefore == years-1
		},
		gen.IntRange(1, 100),
		gen.IntRange(1950, 2100),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}

func TestIsChildAt(t *testing.T) {
	tests := []struct {
		birthDate string
		want      bool
	}{
		{"2026-01-01", true},
		{"2024-10-19", true},
		{"2024-10-18", false},
		{"2010-05-05", false},
		{"", false},
		{"not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.birthDate, func(t *testing.T) {
			if got := IsChildAt(tt.birthDate, refNow); got != tt.want {
				t.Errorf("IsChildAt(%q) = %v, want %v", tt.birthDate, got, tt.want)
			}
		})
	}
}

func TestIsChildMatchesAge(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("IsChild iff age < 2", prop.ForAll(
		func(daysAgo int) bool {
			birth := refNow.AddDate(0, 0, -daysAgo).Format(DateLayout)
			age, err := AgeAt(birth, refNow)
			if err != nil {
				return false
			}
			return IsChildAt(birth, refNow) == (age < 2)
		},
		gen.IntRange(0, 5*365),
	))

	properties.TestingRun(t)
}

func TestDetailedAgeLabelAt(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		want      string
	}{
		{"empty", "", UnspecifiedLabel},
		{"invalid", "abc", UnspecifiedLabel},
		{"45 days", "2026-09-03", "45 يوم"},
		{"born today", "2026-10-18", "0 يوم"},
		{"one month still in days", "2026-08-30", "49 يوم"},
		{"two months", "2026-08-18", "2 شهر"},
		{"three months", "2026-07-18", "3 شهر"},
		{"months and days", "2026-07-13", "3 شهر و 5 يوم"},
		{"borrowed month", "2026-06-25", "3 شهر و 23 يوم"},
		{"thirteen months", "2025-09-18", "1 سنة"},
		{"adult", "1980-01-01", "46 سنة"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetailedAgeLabelAt(tt.birthDate, refNow); got != tt.want {
				t.Errorf("DetailedAgeLabelAt(%q) = %q, want %q", tt.birthDate, got, tt.want)
			}
		})
	}
}
