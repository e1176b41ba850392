package forms

import (
	"sort"
	"strings"
)

// FieldErrors maps a JSON field name to its localized error message.
// It is returned in place of a record when a form fails validation.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field, keeping any message already there
func (e FieldErrors) Add(field, msg string) {
	if prev, ok := e[field]; ok {
		e[field] = prev + "\n" + msg
		return
	}
	e[field] = msg
}
