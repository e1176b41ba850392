package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"familyaid/internal/domain"
	"familyaid/internal/models"
)

// LoginForm holds login credentials
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is the self-registration form of a family head
type RegisterForm struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UserForm is used by admins to create accounts
type UserForm struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=admin head"`
	DualRole bool   `json:"dualRole"`
}

// SettingsForm edits the site settings. Password options left out keep the defaults.
type SettingsForm struct {
	SiteTitle           string `json:"siteTitle" validate:"required,max=200"`
	SiteName            string `json:"siteName" validate:"required,max=200"`
	SiteLogo            string `json:"siteLogo" validate:"omitempty,max=500"`
	Language            string `json:"language" validate:"required,oneof=ar en"`
	MinPasswordLength   *int   `json:"minPasswordLength" validate:"omitempty,gte=4,lte=64"`
	RequireUppercase    *bool  `json:"requireUppercase"`
	RequireLowercase    *bool  `json:"requireLowercase"`
	RequireNumbers      *bool  `json:"requireNumbers"`
	RequireSpecialChars *bool  `json:"requireSpecialChars"`
}

// SubmitLogin checks that both credentials are present
func (v *Validator) SubmitLogin(form LoginForm, lang string) (LoginForm, error) {
	form.Username = strings.TrimSpace(form.Username)
	if errs := v.Check(form, lang); errs != nil {
		return LoginForm{}, errs
	}
	return form, nil
}

// SubmitRegister validates a registration, including the password policy
func (v *Validator) SubmitRegister(form RegisterForm, policy domain.PasswordPolicy, lang string) (models.User, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	errs := v.Check(form, lang)
	errs = addPasswordViolations(errs, form.Password, policy)
	if errs != nil {
		return models.User{}, errs
	}
	return models.User{
		Username: form.Username,
		Email:    form.Email,
		Role:     models.RoleHead,
	}, nil
}

// SubmitUser validates an admin-created account, including the password policy
func (v *Validator) SubmitUser(form UserForm, policy domain.PasswordPolicy, lang string) (models.User, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	errs := v.Check(form, lang)
	errs = addPasswordViolations(errs, form.Password, policy)
	if errs != nil {
		return models.User{}, errs
	}
	return models.User{
		Username: form.Username,
		Email:    form.Email,
		Role:     form.Role,
		DualRole: form.DualRole,
	}, nil
}

// SubmitSettings validates the settings form
func (v *Validator) SubmitSettings(form SettingsForm, lang string) (models.Settings, error) {
	if errs := v.Check(form, lang); errs != nil {
		return models.Settings{}, errs
	}
	return models.Settings{
		SiteTitle:           strings.TrimSpace(form.SiteTitle),
		SiteName:            strings.TrimSpace(form.SiteName),
		SiteLogo:            strings.TrimSpace(form.SiteLogo),
		Language:            form.Language,
		MinPasswordLength:   form.MinPasswordLength,
		RequireUppercase:    form.RequireUppercase,
		RequireLowercase:    form.RequireLowercase,
		RequireNumbers:      form.RequireNumbers,
		RequireSpecialChars: form.RequireSpecialChars,
	}, nil
}

// addPasswordViolations merges policy violations into errs, which may be nil
func addPasswordViolations(errs FieldErrors, password string, policy domain.PasswordPolicy) FieldErrors {
	if password == "" {
		return errs
	}
	violations := domain.CheckPassword(password, policy)
	if len(violations) == 0 {
		return errs
	}
	if errs == nil {
		errs = FieldErrors{}
	}
	for _, msg := range violations {
		errs.Add("password", msg)
	}
	return errs
}

// userStructValidation limits the dual role to admins
func userStructValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(UserForm)
	if form.DualRole && form.Role != models.RoleAdmin {
		sl.ReportError(form.DualRole, "dualRole", "DualRole", dualRoleTag, "")
	}
}
