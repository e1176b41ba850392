package handlers

import (
	"familyaid/internal/domain"
	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/shell"
	"familyaid/internal/views"
)

// FamilyView is a family with display labels and its edit form state
type FamilyView struct {
	models.Family
	BranchLabel        string           `json:"branchLabel"`
	SocialStatusLabel  string           `json:"socialStatusLabel"`
	HousingStatusLabel string           `json:"housingStatusLabel"`
	WarDamageLabel     string           `json:"warDamageLabel"`
	HusbandAge         string           `json:"husbandAge"`
	WifeAge            string           `json:"wifeAge"`
	Form               forms.FamilyForm `json:"form"`
}

func newFamilyView(f models.Family) FamilyView {
	return FamilyView{
		Family:             f,
		BranchLabel:        domain.BranchLabel(f.Branch),
		SocialStatusLabel:  domain.SocialStatusLabel(f.SocialStatus),
		HousingStatusLabel: domain.HousingStatusLabel(f.HousingStatus),
		WarDamageLabel:     domain.DamageDescriptionLabel(f.WarDamageDescription),
		HusbandAge:         domain.DetailedAgeLabel(f.HusbandBirthDate),
		WifeAge:            domain.DetailedAgeLabel(f.WifeBirthDate),
		Form:               forms.FamilyFormFrom(f),
	}
}

// MemberView is a member with its derived age fields and its edit form state
type MemberView struct {
	models.Member
	AgeLabel          string           `json:"ageLabel"`
	IsChild           bool             `json:"isChild"`
	GenderLabel       string           `json:"genderLabel"`
	RelationshipLabel string           `json:"relationshipLabel"`
	Form              forms.MemberForm `json:"form"`
}

func newMemberView(m models.Member) MemberView {
	return MemberView{
		Member:            m,
		AgeLabel:          domain.DetailedAgeLabel(m.BirthDate),
		IsChild:           domain.IsChild(m.BirthDate),
		GenderLabel:       domain.GenderLabel(m.Gender),
		RelationshipLabel: domain.RelationshipLabel(m.Relationship),
		Form:              forms.MemberFormFrom(m),
	}
}

func newMemberViews(members []models.Member) []MemberView {
	out := make([]MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, newMemberView(m))
	}
	return out
}

// FamilyDetail is a family with its members
type FamilyDetail struct {
	Family  FamilyView   `json:"family"`
	Members []MemberView `json:"members"`
}

// RequestView is a request with display labels
type RequestView struct {
	models.RequestWithFamily
	TypeLabel   string `json:"typeLabel"`
	StatusLabel string `json:"statusLabel"`
}

func newRequestView(r models.RequestWithFamily) RequestView {
	return RequestView{
		RequestWithFamily: r,
		TypeLabel:         domain.RequestTypeLabel(r.Type),
		StatusLabel:       domain.RequestStatusLabel(r.Status),
	}
}

// NotificationView is a notification with its target label
type NotificationView struct {
	models.Notification
	TargetLabel string `json:"targetLabel"`
}

func newNotificationViews(list []models.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationView{Notification: n, TargetLabel: domain.TargetLabel(n.Target)})
	}
	return out
}

// UserView is a user with its role label
type UserView struct {
	models.User
	RoleLabel string `json:"roleLabel"`
}

// mapPage converts the items of a page, keeping the paging fields
func mapPage[T, V any](p views.Page[T], f func(T) V) views.Page[V] {
	items := make([]V, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, f(item))
	}
	return views.Page[V]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		FiltersKey: p.FiltersKey,
	}
}

// MeResponse describes the signed-in user and the shell they work in
type MeResponse struct {
	User       UserView         `json:"user"`
	Family     *FamilyView      `json:"family,omitempty"`
	Dashboard  string           `json:"dashboard"`
	CanSwitch  bool             `json:"canSwitch"`
	Capability shell.Capability `json:"capability"`
	CSRFToken  string           `json:"csrfToken,omitempty"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token     string   `json:"token"`
	CSRFToken string   `json:"csrfToken"`
	ExpiresAt string   `json:"expiresAt"`
	HomeRoute string   `json:"homeRoute"`
	User      UserView `json:"user"`
	Dashboard string   `json:"dashboard"`
}

// PublicSettings is the unauthenticated view of the site settings
type PublicSettings struct {
	SiteTitle      string                `json:"siteTitle"`
	SiteName       string                `json:"siteName"`
	SiteLogo       string                `json:"siteLogo"`
	Language       string                `json:"language"`
	PasswordPolicy domain.PasswordPolicy `json:"passwordPolicy"`
}
