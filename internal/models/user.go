package models

import "time"

// Roles
const (
	RoleRoot  = "root"
	RoleAdmin = "admin"
	RoleHead  = "head"
)

// Dashboards a dual-role user can switch between
const (
	DashboardAdmin = "admin"
	DashboardHead  = "head"
)

// User represents an account: a family head, an admin or the root operator
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FamilyID     *int64    `json:"familyId,omitempty"`
	DualRole     bool      `json:"dualRole"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user has admin rights (admin or root)
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleRoot
}

// IsRoot reports whether the user is the root operator
func (u *User) IsRoot() bool {
	return u.Role == RoleRoot
}

// IsDualRole reports whether an admin also runs a family as its head
func (u *User) IsDualRole() bool {
	return u.Role == RoleAdmin && u.DualRole
}

// HasHeadAccess reports whether the user may use the family-head pages
func (u *User) HasHeadAccess() bool {
	return u.Role == RoleHead || u.IsDualRole()
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	Dashboard string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
