package views

import (
	"time"

	"familyaid/internal/domain"
	"familyaid/internal/models"
)

// FamilyFilters are the admin family table filters
type FamilyFilters struct {
	Query        string
	Branch       string
	SocialStatus string
	Status       string
	Dates        DateBounds
}

// Values returns the filters keyed by query parameter name
func (f FamilyFilters) Values() map[string]string {
	return map[string]string{
		"q":             f.Query,
		"branch":        f.Branch,
		"social_status": f.SocialStatus,
		"status":        f.Status,
		"date_from":     formatDay(f.Dates.From),
		"date_to":       formatDay(f.Dates.To),
	}
}

// Predicate combines the filters into one family predicate
func (f FamilyFilters) Predicate() Predicate[models.Family] {
	return MatchAll(
		Search(f.Query,
			func(x models.Family) string { return x.HusbandName },
			func(x models.Family) string { return x.HusbandID },
			func(x models.Family) string { return x.WifeName },
			func(x models.Family) string { return x.WifeID },
			func(x models.Family) string { return x.PrimaryPhone },
		),
		Equals(f.Branch, func(x models.Family) string { return x.Branch }),
		Equals(f.SocialStatus, func(x models.Family) string { return x.SocialStatus }),
		Equals(f.Status, func(x models.Family) string { return x.Status }),
		DateRange(f.Dates, func(x models.Family) time.Time { return x.CreatedAt }),
	)
}

// RequestFilters are the admin request table filters
type RequestFilters struct {
	Query  string
	Status string
	Type   string
	Dates  DateBounds
}

// Values returns the filters keyed by query parameter name
func (f RequestFilters) Values() map[string]string {
	return map[string]string{
		"q":         f.Query,
		"status":    f.Status,
		"type":      f.Type,
		"date_from": formatDay(f.Dates.From),
		"date_to":   formatDay(f.Dates.To),
	}
}

// Predicate combines the filters into one request predicate
func (f RequestFilters) Predicate() Predicate[models.RequestWithFamily] {
	return MatchAll(
		Search(f.Query,
			func(x models.RequestWithFamily) string { return x.HusbandName },
			func(x models.RequestWithFamily) string { return x.HusbandID },
			func(x models.RequestWithFamily) string { return x.Description },
		),
		Equals(f.Status, func(x models.RequestWithFamily) string { return x.Status }),
		Equals(f.Type, func(x models.RequestWithFamily) string { return x.Type }),
		DateRange(f.Dates, func(x models.RequestWithFamily) time.Time { return x.CreatedAt }),
	)
}

// UserFilters are the admin user table filters
type UserFilters struct {
	Query string
	Role  string
}

// Values returns the filters keyed by query parameter name
func (f UserFilters) Values() map[string]string {
	return map[string]string{"q": f.Query, "role": f.Role}
}

// Predicate combines the filters into one user predicate
func (f UserFilters) Predicate() Predicate[models.User] {
	return MatchAll(
		Search(f.Query,
			func(x models.User) string { return x.Username },
			func(x models.User) string { return x.Email },
		),
		Equals(f.Role, func(x models.User) string { return x.Role }),
	)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
