// Package views filters, paginates and summarizes record lists for the
// dashboard tables.
package views

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"familyaid/internal/domain"
)

// AllValue is the filter option meaning "no constraint"
const AllValue = "all"

// Predicate reports whether a record passes a filter
type Predicate[T any] func(T) bool

// MatchAll combines predicates with logical AND. Nil predicates are skipped.
func MatchAll[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Filter returns the items passing every predicate, in their original order
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	match := MatchAll(preds...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Search matches records where any field contains term, ignoring case.
// An empty term matches everything. The returned predicate must not be
// shared between goroutines.
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	caser := cases.Fold()
	needle := caser.String(term)
	return func(item T) bool {
		for _, field := range fields {
			if strings.Contains(caser.String(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches records whose field equals value exactly. "" and "all" match everything.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if value == "" || value == AllValue {
		return nil
	}
	return func(item T) bool {
		return field(item) == value
	}
}

// DateBounds is an inclusive range of whole days. A zero bound is open.
type DateBounds struct {
	From time.Time
	To   time.Time
}

// ParseDateBounds parses optional YYYY-MM-DD bounds
func ParseDateBounds(from, to string) (DateBounds, error) {
	var b DateBounds
	var err error
	if from = strings.TrimSpace(from); from != "" {
		if b.From, err = time.Parse(domain.DateLayout, from); err != nil {
			return DateBounds{}, fmt.Errorf("invalid date_from %q: %w", from, err)
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if b.To, err = time.Parse(domain.DateLayout, to); err != nil {
			return DateBounds{}, fmt.Errorf("invalid date_to %q: %w", to, err)
		}
	}
	return b, nil
}

// IsZero reports whether both bounds are open
func (b DateBounds) IsZero() bool {
	return b.From.IsZero() && b.To.IsZero()
}

// Contains reports whether t falls on or between the bound days
func (b DateBounds) Contains(t time.Time) bool {
	t = t.UTC()
	if !b.From.IsZero() && t.Before(b.From) {
		return false
	}
	if !b.To.IsZero() && !t.Before(b.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// DateRange matches records whose timestamp falls within b
func DateRange[T any](b DateBounds, field func(T) time.Time) Predicate[T] {
	if b.IsZero() {
		return nil
	}
	return func(item T) bool {
		return b.Contains(field(item))
	}
}
