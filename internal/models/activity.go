package models

import "time"

// Activity is one entry of the root-only activity log
type Activity struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entityId"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
