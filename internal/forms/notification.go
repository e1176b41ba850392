package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"familyaid/internal/models"
)

// NotificationForm is an admin broadcast. Recipients are user IDs and only
// apply to the specific target.
type NotificationForm struct {
	Title      string  `json:"title" validate:"required,min=3"`
	Message    string  `json:"message" validate:"required,min=10"`
	Target     string  `json:"target" validate:"required,target"`
	Recipients []int64 `json:"recipients"`
}

// Visible reports whether a dependent field is shown
func (f NotificationForm) Visible(field string) bool {
	if field == "recipients" {
		return f.Target == models.TargetSpecific
	}
	return true
}

// SubmitNotification validates the form and returns the notification or FieldErrors
func (v *Validator) SubmitNotification(form NotificationForm, lang string) (models.Notification, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Message = strings.TrimSpace(form.Message)
	if errs := v.Check(form, lang); errs != nil {
		return models.Notification{}, errs
	}

	n := models.Notification{
		Title:   form.Title,
		Message: form.Message,
		Target:  form.Target,
	}
	if form.Target == models.TargetSpecific {
		n.Recipients = form.Recipients
	}
	return n, nil
}

func notificationStructValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(NotificationForm)
	if form.Target == models.TargetSpecific && len(form.Recipients) == 0 {
		sl.ReportError(form.Recipients, "recipients", "Recipients", recipientsTag, "")
	}
}
