package models

import (
	"slices"
	"time"
)

// Notification targets
const (
	TargetAll      = "all"
	TargetHead     = "head"
	TargetAdmin    = "admin"
	TargetSpecific = "specific"
	TargetUrgent   = "urgent"
)

// Notification is an administrator-authored broadcast
type Notification struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Target     string    `json:"target"`
	Recipients []int64   `json:"recipients"`
	SenderID   *int64    `json:"senderId,omitempty"`
	SenderName string    `json:"senderName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasRecipient reports whether userID is on the explicit recipient list
func (n *Notification) HasRecipient(userID int64) bool {
	return slices.Contains(n.Recipients, userID)
}
