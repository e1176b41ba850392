package models

import "time"

// Family statuses. Families are deactivated, never deleted.
const (
	FamilyActive   = "active"
	FamilyInactive = "inactive"
)

// Family represents a registered household headed by one user
type Family struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"userId,omitempty"`

	HusbandName      string `json:"husbandName"`
	HusbandID        string `json:"husbandId"`
	HusbandBirthDate string `json:"husbandBirthDate"`
	HusbandJob       string `json:"husbandJob"`
	PrimaryPhone     string `json:"primaryPhone"`
	SecondaryPhone   string `json:"secondaryPhone"`

	WifeName      string `json:"wifeName"`
	WifeID        string `json:"wifeId"`
	WifeBirthDate string `json:"wifeBirthDate"`
	WifeJob       string `json:"wifeJob"`
	WifePregnancy string `json:"wifePregnancy"`

	OriginalResidence    string `json:"originalResidence"`
	HousingStatus        string `json:"housingStatus"`
	IsDisplaced          bool   `json:"isDisplaced"`
	DisplacementLocation string `json:"displacementLocation"`
	IsAbroad             bool   `json:"isAbroad"`
	HasWarDamage         bool   `json:"hasWarDamage"`
	WarDamageDescription string `json:"warDamageDescription"`
	Branch               string `json:"branch"`
	Landmark             string `json:"landmark"`
	SocialStatus         string `json:"socialStatus"`

	TotalMembers int `json:"totalMembers"`
	MaleCount    int `json:"maleCount"`
	FemaleCount  int `json:"femaleCount"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether the family has not been deactivated
func (f *Family) IsActive() bool {
	return f.Status != FamilyInactive
}

// FamilyWithMembers combines a family with its household composition
type FamilyWithMembers struct {
	Family  Family   `json:"family"`
	Members []Member `json:"members"`
}
