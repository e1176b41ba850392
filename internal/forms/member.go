package forms

import (
	"strings"

	"familyaid/internal/models"
)

// MemberForm adds or edits a household member
type MemberForm struct {
	FullName       string `json:"fullName" validate:"required,min=3"`
	NationalID     string `json:"nationalId" validate:"omitempty,nationalid"`
	BirthDate      string `json:"birthDate" validate:"required,birthdate"`
	Gender         string `json:"gender" validate:"required,gender"`
	Relationship   string `json:"relationship" validate:"required,relationship"`
	IsDisabled     bool   `json:"isDisabled"`
	DisabilityType string `json:"disabilityType"`
}

// MemberFormFrom loads a stored member into the form
func MemberFormFrom(m models.Member) MemberForm {
	return MemberForm{
		FullName:       m.FullName,
		NationalID:     m.NationalID,
		BirthDate:      m.BirthDate,
		Gender:         m.Gender,
		Relationship:   m.Relationship,
		IsDisabled:     m.IsDisabled,
		DisabilityType: m.DisabilityType,
	}
}

// Visible reports whether a dependent field is shown
func (f MemberForm) Visible(field string) bool {
	if field == "disabilityType" {
		return f.IsDisabled
	}
	return true
}

// SubmitMember validates the form and returns the member record or FieldErrors
func (v *Validator) SubmitMember(form MemberForm, lang string) (models.Member, error) {
	if errs := v.Check(form, lang); errs != nil {
		return models.Member{}, errs
	}
	return models.Member{
		FullName:       strings.TrimSpace(form.FullName),
		NationalID:     form.NationalID,
		BirthDate:      form.BirthDate,
		Gender:         form.Gender,
		Relationship:   form.Relationship,
		IsDisabled:     form.IsDisabled,
		DisabilityType: strings.TrimSpace(form.DisabilityType),
	}, nil
}
