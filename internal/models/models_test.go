package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{ID: "test-session", UserID: 1, ExpiresAt: tt.expiresAt}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserRoles(t *testing.T) {
	tests := []struct {
		role      string
		wantAdmin bool
		wantRoot  bool
	}{
		{RoleRoot, true, true},
		{RoleAdmin, true, false},
		{RoleHead, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			u := User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.wantAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.wantAdmin)
			}
			if got := u.IsRoot(); got != tt.wantRoot {
				t.Errorf("IsRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestNotificationHasRecipient(t *testing.T) {
	n := Notification{Target: TargetSpecific, Recipients: []int64{3, 7}}

	if !n.HasRecipient(7) {
		t.Error("HasRecipient(7) = false, want true")
	}
	if n.HasRecipient(8) {
		t.Error("HasRecipient(8) = true, want false")
	}
}

func TestFamilyIsActive(t *testing.T) {
	if f := (Family{Status: FamilyActive}); !f.IsActive() {
		t.Error("active family reported inactive")
	}
	if f := (Family{}); !f.IsActive() {
		t.Error("family without status should count as active")
	}
	if f := (Family{Status: FamilyInactive}); f.IsActive() {
		t.Error("inactive family reported active")
	}
}

func TestHeadAccess(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		wantDual bool
		wantHead bool
	}{
		{"head", User{Role: RoleHead}, false, true},
		{"head flagged dual", User{Role: RoleHead, DualRole: true}, false, true},
		{"dual admin", User{Role: RoleAdmin, DualRole: true}, true, true},
		{"admin", User{Role: RoleAdmin}, false, false},
		{"root flagged dual", User{Role: RoleRoot, DualRole: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsDualRole(); got != tt.wantDual {
				t.Errorf("IsDualRole() = %v, want %v", got, tt.wantDual)
			}
			if got := tt.user.HasHeadAccess(); got != tt.wantHead {
				t.Errorf("HasHeadAccess() = %v, want %v", got, tt.wantHead)
			}
		})
	}
}
