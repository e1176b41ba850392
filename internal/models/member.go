package models

import "time"

// Member is an individual belonging to a Family, other than the head and spouse
type Member struct {
	ID             int64     `json:"id"`
	FamilyID       int64     `json:"familyId"`
	FullName       string    `json:"fullName"`
	NationalID     string    `json:"nationalId"`
	BirthDate      string    `json:"birthDate"`
	Gender         string    `json:"gender"`
	Relationship   string    `json:"relationship"`
	IsDisabled     bool      `json:"isDisabled"`
	DisabilityType string    `json:"disabilityType"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
