package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		policy   PasswordPolicy
		want     []string
	}{
		{
			name:     "short lowercase against defaults",
			password: "abc",
			policy:   DefaultPasswordPolicy,
			want: []string{
				"يجب أن تتكون كلمة المرور من 8 أحرف على الأقل",
				msgPasswordUpper,
				msgPasswordNumber,
			},
		},
		{
			name:     "compliant against defaults",
			password: "Abcdef12",
			policy:   DefaultPasswordPolicy,
			want:     []string{},
		},
		{
			name:     "special required",
			password: "Abcdef12",
			policy:   PasswordPolicy{MinLength: 8, RequireSpecialChars: true},
			want:     []string{msgPasswordSpecial},
		},
		{
			name:     "special satisfied",
			password: "Abcdef1!",
			policy:   PasswordPolicy{MinLength: 8, RequireUppercase: true, RequireLowercase: true, RequireNumbers: true, RequireSpecialChars: true},
			want:     []string{},
		},
		{
			name:     "every rule broken",
			password: "",
			policy:   PasswordPolicy{MinLength: 4, RequireUppercase: true, RequireLowercase: true, RequireNumbers: true, RequireSpecialChars: true},
			want: []string{
				"يجب أن تتكون كلمة المرور من 4 أحرف على الأقل",
				msgPasswordUpper,
				msgPasswordLower,
				msgPasswordNumber,
				msgPasswordSpecial,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password, tt.policy))
		})
	}
}

func TestPasswordPolicyOptionsResolve(t *testing.T) {
	assert.Equal(t, DefaultPasswordPolicy, PasswordPolicyOptions{}.Resolve())

	minLength := 12
	special := true
	upper := false
	got := PasswordPolicyOptions{
		MinLength:           &minLength,
		RequireUppercase:    &upper,
		RequireSpecialChars: &special,
	}.Resolve()

	assert.Equal(t, PasswordPolicy{
		MinLength:           12,
		RequireUppercase:    false,
		RequireLowercase:    true,
		RequireNumbers:      true,
		RequireSpecialChars: true,
	}, got)
}
