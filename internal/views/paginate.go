package views

import (
	"net/url"
	"strconv"
)

// DefaultPageSize is the table page size used across the dashboards
const DefaultPageSize = 10

// Page is one slice of a filtered list
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	FiltersKey string `json:"filtersKey,omitempty"`
}

// Paginate returns the 1-indexed page of items. Pages below 1 are treated as
// page 1 and pages past the end are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := min(start+size, total)
	p.Items = items[start:end]
	return p
}

// FiltersKey identifies a set of filter values. Empty and "all" values are
// left out so they compare equal.
func FiltersKey(filters map[string]string) string {
	values := url.Values{}
	for k, v := range filters {
		if v == "" || v == AllValue {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}

// ListState is the page and filter state of one table view. Changing any
// filter returns the view to page 1.
type ListState struct {
	Page    int
	Filters map[string]string
}

// NewListState starts on page 1 with no filters
func NewListState() *ListState {
	return &ListState{Page: 1, Filters: map[string]string{}}
}

// SetFilter updates a filter value and resets the page when it changed.
// AllValue and "" mean the same thing.
func (s *ListState) SetFilter(name, value string) {
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	if value == AllValue {
		value = ""
	}
	if s.Filters[name] == value {
		return
	}
	s.Filters[name] = value
	s.Page = 1
}

// SetPage moves to page p, clamped to 1
func (s *ListState) SetPage(p int) {
	s.Page = max(p, 1)
}

// Key returns the FiltersKey of the current filters
func (s *ListState) Key() string {
	return FiltersKey(s.Filters)
}

// ResolvePage restores list state from a request. The state starts from the
// filters the client paged with (prevKey) on the requested page, then the
// current filters are applied, so any change lands on page 1.
func ResolvePage(page, prevKey string, filters map[string]string) *ListState {
	state := NewListState()
	if prev, err := url.ParseQuery(prevKey); err == nil {
		for name := range prev {
			state.Filters[name] = prev.Get(name)
		}
	}
	if n, err := strconv.Atoi(page); err == nil {
		state.SetPage(n)
	}
	for name, value := range filters {
		state.SetFilter(name, value)
	}
	// a filter dropped from the request entirely
	if state.Key() != FiltersKey(filters) {
		state.Page = 1
		state.Filters = filters
	}
	return state
}
