package models

import "time"

// Request statuses
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Request types
const (
	RequestFinancial = "financial"
	RequestMedical   = "medical"
	RequestDamage    = "damage"
)

// Request is an aid application submitted by a family
type Request struct {
	ID           int64     `json:"id"`
	FamilyID     int64     `json:"familyId"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	AdminComment string    `json:"adminComment"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RequestWithFamily is a request joined with the head's name and ID for admin lists
type RequestWithFamily struct {
	Request
	HusbandName string `json:"husbandName"`
	HusbandID   string `json:"husbandId"`
}
