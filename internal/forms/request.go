package forms

import (
	"strings"

	"familyaid/internal/models"
)

// RequestForm is an aid request submitted by a family head
type RequestForm struct {
	Type        string `json:"type" validate:"required,requesttype"`
	Description string `json:"description" validate:"required,min=10"`
}

// ReviewForm is an admin decision on a pending request
type ReviewForm struct {
	Status       string `json:"status" validate:"required,oneof=approved rejected"`
	AdminComment string `json:"adminComment" validate:"max=1000"`
}

// SubmitRequest validates the form and returns a pending request or FieldErrors
func (v *Validator) SubmitRequest(form RequestForm, lang string) (models.Request, error) {
	form.Description = strings.TrimSpace(form.Description)
	if errs := v.Check(form, lang); errs != nil {
		return models.Request{}, errs
	}
	return models.Request{
		Type:        form.Type,
		Description: form.Description,
		Status:      models.RequestPending,
	}, nil
}

// SubmitReview validates an admin decision
func (v *Validator) SubmitReview(form ReviewForm, lang string) (ReviewForm, error) {
	form.AdminComment = strings.TrimSpace(form.AdminComment)
	if errs := v.Check(form, lang); errs != nil {
		return ReviewForm{}, errs
	}
	return form, nil
}
