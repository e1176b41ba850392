// Package shell decides the dashboard chrome for a role: layout, home route
// and navigation items.
package shell

import (
	"errors"

	"familyaid/internal/models"
)

// Layouts
const (
	LayoutSidebar = "sidebar"
	LayoutPlain   = "plain"
)

// Home routes
const (
	HeadHome  = "/dashboard"
	AdminHome = "/admin"
)

// ErrSwitchNotAllowed is returned when a user without dual role asks to switch dashboards
var ErrSwitchNotAllowed = errors.New("dashboard switch not allowed")

// NavItem is one navigation entry
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Route string `json:"route"`
}

// Capability is everything the chrome needs to know about a role
type Capability struct {
	Role      string    `json:"role"`
	Label     string    `json:"label"`
	HomeRoute string    `json:"homeRoute"`
	Layout    string    `json:"layout"`
	NavItems  []NavItem `json:"navItems"`
}

var adminNav = []NavItem{
	{Key: "dashboard", Label: "لوحة التحكم", Route: AdminHome},
	{Key: "families", Label: "الأسر", Route: "/admin/families"},
	{Key: "requests", Label: "الطلبات", Route: "/admin/requests"},
	{Key: "notifications", Label: "الإشعارات", Route: "/admin/notifications"},
	{Key: "users", Label: "المستخدمون", Route: "/admin/users"},
	{Key: "reports", Label: "التقارير", Route: "/admin/reports"},
}

var rootOnlyNav = []NavItem{
	{Key: "settings", Label: "الإعدادات", Route: "/admin/settings"},
	{Key: "activity", Label: "سجل النشاط", Route: "/admin/activity"},
}

var headNav = []NavItem{
	{Key: "dashboard", Label: "الرئيسية", Route: HeadHome},
	{Key: "family", Label: "بيانات الأسرة", Route: "/dashboard/family"},
	{Key: "members", Label: "أفراد الأسرة", Route: "/dashboard/members"},
	{Key: "requests", Label: "طلباتي", Route: "/dashboard/requests"},
	{Key: "notifications", Label: "الإشعارات", Route: "/dashboard/notifications"},
}

var capabilities = map[string]Capability{
	models.RoleRoot: {
		Role:      models.RoleRoot,
		Label:     "المدير العام",
		HomeRoute: AdminHome,
		Layout:    LayoutSidebar,
		NavItems:  append(append([]NavItem{}, adminNav...), rootOnlyNav...),
	},
	models.RoleAdmin: {
		Role:      models.RoleAdmin,
		Label:     "مشرف",
		HomeRoute: AdminHome,
		Layout:    LayoutSidebar,
		NavItems:  adminNav,
	},
	models.RoleHead: {
		Role:      models.RoleHead,
		Label:     "رب أسرة",
		HomeRoute: HeadHome,
		Layout:    LayoutPlain,
		NavItems:  headNav,
	},
}

// For returns the capability of role. Unknown roles get the head chrome.
func For(role string) Capability {
	c, ok := capabilities[role]
	if !ok {
		c = capabilities[models.RoleHead]
	}
	items := make([]NavItem, len(c.NavItems))
	copy(items, c.NavItems)
	c.NavItems = items
	return c
}

// CanSwitch reports whether the user may toggle between the admin and head dashboards
func CanSwitch(u *models.User) bool {
	return u != nil && u.IsDualRole()
}

// DefaultDashboard is the dashboard a session starts on
func DefaultDashboard(u *models.User) string {
	if u.Role == models.RoleHead {
		return models.DashboardHead
	}
	return models.DashboardAdmin
}

// Effective returns the capability the user works with on dashboard. A
// dual-role user on the head dashboard gets the head chrome.
func Effective(u *models.User, dashboard string) Capability {
	if CanSwitch(u) && dashboard == models.DashboardHead {
		c := For(models.RoleHead)
		c.Role = u.Role
		return c
	}
	return For(u.Role)
}

// Switch returns the dashboard opposite to current and its home route
func Switch(u *models.User, current string) (string, string, error) {
	if !CanSwitch(u) {
		return "", "", ErrSwitchNotAllowed
	}
	if current == models.DashboardHead {
		return models.DashboardAdmin, AdminHome, nil
	}
	return models.DashboardHead, HeadHome, nil
}
