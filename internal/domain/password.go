package domain

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// PasswordPolicy is a fully resolved password policy
type PasswordPolicy struct {
	MinLength           int  `json:"minLength"`
	RequireUppercase    bool `json:"requireUppercase"`
	RequireLowercase    bool `json:"requireLowercase"`
	RequireNumbers      bool `json:"requireNumbers"`
	RequireSpecialChars bool `json:"requireSpecialChars"`
}

// DefaultPasswordPolicy applies when settings leave an option unset
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:           8,
	RequireUppercase:    true,
	RequireLowercase:    true,
	RequireNumbers:      true,
	RequireSpecialChars: false,
}

// PasswordPolicyOptions holds the policy as stored in settings, where any
// option may be absent.
type PasswordPolicyOptions struct {
	MinLength           *int
	RequireUppercase    *bool
	RequireLowercase    *bool
	RequireNumbers      *bool
	RequireSpecialChars *bool
}

// Resolve fills absent options from DefaultPasswordPolicy
func (o PasswordPolicyOptions) Resolve() PasswordPolicy {
	p := DefaultPasswordPolicy
	if o.MinLength != nil && *o.MinLength > 0 {
		p.MinLength = *o.MinLength
	}
	if o.RequireUppercase != nil {
		p.RequireUppercase = *o.RequireUppercase
	}
	if o.RequireLowercase != nil {
		p.RequireLowercase = *o.RequireLowercase
	}
	if o.RequireNumbers != nil {
		p.RequireNumbers = *o.RequireNumbers
	}
	if o.RequireSpecialChars != nil {
		p.RequireSpecialChars = *o.RequireSpecialChars
	}
	return p
}

const (
	msgPasswordLength  = "يجب أن تتكون كلمة المرور من %d أحرف على الأقل"
	msgPasswordUpper   = "يجب أن تحتوي كلمة المرور على حرف كبير واحد على الأقل"
	msgPasswordLower   = "يجب أن تحتوي كلمة المرور على حرف صغير واحد على الأقل"
	msgPasswordNumber  = "يجب أن تحتوي كلمة المرور على رقم واحد على الأقل"
	msgPasswordSpecial = "يجب أن تحتوي كلمة المرور على رمز خاص واحد على الأقل"
)

// CheckPassword returns every rule the password breaks, in policy order.
// An empty result means the password is compliant.
func CheckPassword(password string, policy PasswordPolicy) []string {
	var upper, lower, number, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			number = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}

	violations := []string{}
	if utf8.RuneCountInString(password) < policy.MinLength {
		violations = append(violations, fmt.Sprintf(msgPasswordLength, policy.MinLength))
	}
	if policy.RequireUppercase && !upper {
		violations = append(violations, msgPasswordUpper)
	}
	if policy.RequireLowercase && !lower {
		violations = append(violations, msgPasswordLower)
	}
	if policy.RequireNumbers && !number {
		violations = append(violations, msgPasswordNumber)
	}
	if policy.RequireSpecialChars && !special {
		violations = append(violations, msgPasswordSpecial)
	}
	return violations
}
