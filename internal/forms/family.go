package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"familyaid/internal/domain"
	"familyaid/internal/models"
)

// FamilyForm is the family registration and edit form. Branch, SocialStatus
// and WarDamageDescription take a known code or CustomMarker, in which case
// the matching Custom* field carries the text.
type FamilyForm struct {
	HusbandName      string `json:"husbandName" validate:"required,min=3"`
	HusbandID        string `json:"husbandId" validate:"required,nationalid"`
	HusbandBirthDate string `json:"husbandBirthDate" validate:"required,birthdate"`
	HusbandJob       string `json:"husbandJob"`
	PrimaryPhone     string `json:"primaryPhone" validate:"required,phone"`
	SecondaryPhone   string `json:"secondaryPhone" validate:"omitempty,phone"`

	WifeName      string `json:"wifeName"`
	WifeID        string `json:"wifeId" validate:"omitempty,nationalid"`
	WifeBirthDate string `json:"wifeBirthDate" validate:"omitempty,birthdate"`
	WifeJob       string `json:"wifeJob"`
	WifePregnancy string `json:"wifePregnancy"`

	OriginalResidence    string `json:"originalResidence" validate:"required"`
	HousingStatus        string `json:"housingStatus" validate:"required,housing"`
	IsDisplaced          bool   `json:"isDisplaced"`
	DisplacementLocation string `json:"displacementLocation"`
	IsAbroad             bool   `json:"isAbroad"`
	HasWarDamage         bool   `json:"hasWarDamage"`
	WarDamageDescription string `json:"warDamageDescription" validate:"omitempty,damage"`
	CustomWarDamage      string `json:"customWarDamage" validate:"required_if=WarDamageDescription custom"`

	Branch             string `json:"branch" validate:"required,branch"`
	CustomBranch       string `json:"customBranch" validate:"required_if=Branch custom"`
	Landmark           string `json:"landmark"`
	SocialStatus       string `json:"socialStatus" validate:"required,socialstatus"`
	CustomSocialStatus string `json:"customSocialStatus" validate:"required_if=SocialStatus custom"`

	TotalMembers int `json:"totalMembers" validate:"gte=1"`
	MaleCount    int `json:"maleCount" validate:"gte=0"`
	FemaleCount  int `json:"femaleCount" validate:"gte=0"`
}

// FamilyFormFrom loads a stored family into the form. Stored values that are
// not known codes open in custom mode seeded with the stored text.
func FamilyFormFrom(f models.Family) FamilyForm {
	branch := ParseChoice(f.Branch, domain.Branches)
	social := ParseChoice(f.SocialStatus, domain.SocialStatuses)
	damage := ParseChoice(f.WarDamageDescription, domain.DamageDescriptions)

	return FamilyForm{
		HusbandName:          f.HusbandName,
		HusbandID:            f.HusbandID,
		HusbandBirthDate:     f.HusbandBirthDate,
		HusbandJob:           f.HusbandJob,
		PrimaryPhone:         f.PrimaryPhone,
		SecondaryPhone:       f.SecondaryPhone,
		WifeName:             f.WifeName,
		WifeID:               f.WifeID,
		WifeBirthDate:        f.WifeBirthDate,
		WifeJob:              f.WifeJob,
		WifePregnancy:        f.WifePregnancy,
		OriginalResidence:    f.OriginalResidence,
		HousingStatus:        f.HousingStatus,
		IsDisplaced:          f.IsDisplaced,
		DisplacementLocation: f.DisplacementLocation,
		IsAbroad:             f.IsAbroad,
		HasWarDamage:         f.HasWarDamage,
		WarDamageDescription: damage.Option(),
		CustomWarDamage:      damage.Text(),
		Branch:               branch.Option(),
		CustomBranch:         branch.Text(),
		Landmark:             f.Landmark,
		SocialStatus:         social.Option(),
		CustomSocialStatus:   social.Text(),
		TotalMembers:         f.TotalMembers,
		MaleCount:            f.MaleCount,
		FemaleCount:          f.FemaleCount,
	}
}

// BranchChoice returns the branch as a tagged choice
func (f FamilyForm) BranchChoice() Choice {
	return selectChoice(f.Branch, f.CustomBranch)
}

// SocialStatusChoice returns the social status as a tagged choice
func (f FamilyForm) SocialStatusChoice() Choice {
	return selectChoice(f.SocialStatus, f.CustomSocialStatus)
}

// WarDamageChoice returns the damage description as a tagged choice
func (f FamilyForm) WarDamageChoice() Choice {
	return selectChoice(f.WarDamageDescription, f.CustomWarDamage)
}

// Visible reports whether a dependent field is shown. Hidden fields keep
// their values and stay optional.
func (f FamilyForm) Visible(field string) bool {
	switch field {
	case "displacementLocation":
		return f.IsDisplaced
	case "warDamageDescription":
		return f.HasWarDamage
	case "customWarDamage":
		return f.HasWarDamage && f.WarDamageDescription == CustomMarker
	case "customBranch":
		return f.Branch == CustomMarker
	case "customSocialStatus":
		return f.SocialStatus == CustomMarker
	}
	return true
}

// Record builds the family record carried to storage. Custom choices are
// replaced by their text.
func (f FamilyForm) Record() models.Family {
	return models.Family{
		HusbandName:          strings.TrimSpace(f.HusbandName),
		HusbandID:            f.HusbandID,
		HusbandBirthDate:     f.HusbandBirthDate,
		HusbandJob:           strings.TrimSpace(f.HusbandJob),
		PrimaryPhone:         f.PrimaryPhone,
		SecondaryPhone:       f.SecondaryPhone,
		WifeName:             strings.TrimSpace(f.WifeName),
		WifeID:               f.WifeID,
		WifeBirthDate:        f.WifeBirthDate,
		WifeJob:              strings.TrimSpace(f.WifeJob),
		WifePregnancy:        strings.TrimSpace(f.WifePregnancy),
		OriginalResidence:    strings.TrimSpace(f.OriginalResidence),
		HousingStatus:        f.HousingStatus,
		IsDisplaced:          f.IsDisplaced,
		DisplacementLocation: strings.TrimSpace(f.DisplacementLocation),
		IsAbroad:             f.IsAbroad,
		HasWarDamage:         f.HasWarDamage,
		WarDamageDescription: f.WarDamageChoice().Value(),
		Branch:               f.BranchChoice().Value(),
		Landmark:             strings.TrimSpace(f.Landmark),
		SocialStatus:         f.SocialStatusChoice().Value(),
		TotalMembers:         f.TotalMembers,
		MaleCount:            f.MaleCount,
		FemaleCount:          f.FemaleCount,
		Status:               models.FamilyActive,
	}
}

// SubmitFamily validates the form and returns the family record or FieldErrors
func (v *Validator) SubmitFamily(form FamilyForm, lang string) (models.Family, error) {
	form.CustomBranch = strings.TrimSpace(form.CustomBranch)
	form.CustomSocialStatus = strings.TrimSpace(form.CustomSocialStatus)
	form.CustomWarDamage = strings.TrimSpace(form.CustomWarDamage)
	if errs := v.Check(form, lang); errs != nil {
		return models.Family{}, errs
	}
	return form.Record(), nil
}

// familyStructValidation checks that the gender counts fit the household size
func familyStructValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(FamilyForm)
	if form.MaleCount+form.FemaleCount > form.TotalMembers {
		sl.ReportError(form.MaleCount, "maleCount", "MaleCount", memberCountsTag, "")
		sl.ReportError(form.FemaleCount, "femaleCount", "FemaleCount", memberCountsTag, "")
	}
}
