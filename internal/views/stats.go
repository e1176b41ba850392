package views

import "familyaid/internal/models"

// FamilyStats summarizes a family collection
type FamilyStats struct {
	Total          int            `json:"total"`
	Active         int            `json:"active"`
	Inactive       int            `json:"inactive"`
	Displaced      int            `json:"displaced"`
	Abroad         int            `json:"abroad"`
	WarDamaged     int            `json:"warDamaged"`
	Members        int            `json:"members"`
	ByBranch       map[string]int `json:"byBranch"`
	BySocialStatus map[string]int `json:"bySocialStatus"`
}

// RequestStats summarizes a request collection
type RequestStats struct {
	Total    int            `json:"total"`
	Pending  int            `json:"pending"`
	Approved int            `json:"approved"`
	Rejected int            `json:"rejected"`
	ByType   map[string]int `json:"byType"`
}

// UserStats summarizes the accounts
type UserStats struct {
	Total    int `json:"total"`
	Root     int `json:"root"`
	Admins   int `json:"admins"`
	Heads    int `json:"heads"`
	DualRole int `json:"dualRole"`
}

// Stats is the admin dashboard summary
type Stats struct {
	Families FamilyStats  `json:"families"`
	Requests RequestStats `json:"requests"`
	Users    UserStats    `json:"users"`
}

// SummarizeFamilies counts families by flag, branch and social status
func SummarizeFamilies(families []models.Family) FamilyStats {
	s := FamilyStats{
		Total:          len(families),
		ByBranch:       map[string]int{},
		BySocialStatus: map[string]int{},
	}
	for _, f := range families {
		if f.IsActive() {
			s.Active++
		} else {
			s.Inactive++
		}
		if f.IsDisplaced {
			s.Displaced++
		}
		if f.IsAbroad {
			s.Abroad++
		}
		if f.HasWarDamage {
			s.WarDamaged++
		}
		s.Members += f.TotalMembers
		if f.Branch != "" {
			s.ByBranch[f.Branch]++
		}
		if f.SocialStatus != "" {
			s.BySocialStatus[f.SocialStatus]++
		}
	}
	return s
}

// SummarizeRequests counts requests by status and type
func SummarizeRequests(requests []models.RequestWithFamily) RequestStats {
	s := RequestStats{Total: len(requests), ByType: map[string]int{}}
	for _, r := range requests {
		switch r.Status {
		case models.RequestPending:
			s.Pending++
		case models.RequestApproved:
			s.Approved++
		case models.RequestRejected:
			s.Rejected++
		}
		s.ByType[r.Type]++
	}
	return s
}

// SummarizeUsers counts accounts by role
func SummarizeUsers(users []models.User) UserStats {
	s := UserStats{Total: len(users)}
	for _, u := range users {
		switch u.Role {
		case models.RoleRoot:
			s.Root++
		case models.RoleAdmin:
			s.Admins++
		case models.RoleHead:
			s.Heads++
		}
		if u.DualRole {
			s.DualRole++
		}
	}
	return s
}
