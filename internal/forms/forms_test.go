package forms

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyaid/internal/domain"
	"familyaid/internal/models"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func validFamilyForm() FamilyForm {
	return FamilyForm{
		HusbandName:       "Ahmad Saleh",
		HusbandID:         "123456789",
		HusbandBirthDate:  "1985-04-12",
		PrimaryPhone:      "0599123456",
		OriginalResidence: "Gaza",
		HousingStatus:     "rented",
		Branch:            "alnogra",
		SocialStatus:      "married",
		TotalMembers:      5,
		MaleCount:         2,
		FemaleCount:       3,
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var errs FieldErrors
	require.True(t, errors.As(err, &errs), "error %v is not FieldErrors", err)
	return errs
}

func TestSubmitFamily(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name       string
		modify     func(f *FamilyForm)
		wantFields []string
	}{
		{
			name:   "valid",
			modify: func(f *FamilyForm) {},
		},
		{
			name:       "short husband id",
			modify:     func(f *FamilyForm) { f.HusbandID = "12345" },
			wantFields: []string{"husbandId"},
		},
		{
			name:       "wife id with letters",
			modify:     func(f *FamilyForm) { f.WifeID = "12345678a" },
			wantFields: []string{"wifeId"},
		},
		{
			name:   "wife id optional",
			modify: func(f *FamilyForm) { f.WifeID = "" },
		},
		{
			name:       "missing required fields",
			modify:     func(f *FamilyForm) { f.HusbandName = ""; f.PrimaryPhone = "" },
			wantFields: []string{"husbandName", "primaryPhone"},
		},
		{
			name:       "unknown branch",
			modify:     func(f *FamilyForm) { f.Branch = "nowhere" },
			wantFields: []string{"branch"},
		},
		{
			name:       "custom branch without text",
			modify:     func(f *FamilyForm) { f.Branch = CustomMarker },
			wantFields: []string{"customBranch"},
		},
		{
			name:       "custom branch with blank text",
			modify:     func(f *FamilyForm) { f.Branch = CustomMarker; f.CustomBranch = "   " },
			wantFields: []string{"customBranch"},
		},
		{
			name: "custom damage with blank text",
			modify: func(f *FamilyForm) {
				f.HasWarDamage = true
				f.WarDamageDescription = CustomMarker
				f.CustomWarDamage = "\t "
			},
			wantFields: []string{"customWarDamage"},
		},
		{
			name:       "custom social status without text",
			modify:     func(f *FamilyForm) { f.SocialStatus = CustomMarker },
			wantFields: []string{"customSocialStatus"},
		},
		{
			name:       "counts exceed total",
			modify:     func(f *FamilyForm) { f.MaleCount = 4; f.FemaleCount = 4 },
			wantFields: []string{"maleCount", "femaleCount"},
		},
		{
			name:       "future birth date",
			modify:     func(f *FamilyForm) { f.HusbandBirthDate = "2999-01-01" },
			wantFields: []string{"husbandBirthDate"},
		},
		{
			name:   "hidden displacement location stays optional",
			modify: func(f *FamilyForm) { f.IsDisplaced = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validFamilyForm()
			tt.modify(&form)

			family, err := v.SubmitFamily(form, "ar")
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, form.HusbandName, family.HusbandName)
				return
			}

			errs := fieldErrors(t, err)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestSubmitFamilyCustomRoundTrip(t *testing.T) {
	v := newTestValidator(t)

	form := validFamilyForm()
	form.Branch = CustomMarker
	form.CustomBranch = "My Branch"
	form.HasWarDamage = true
	form.WarDamageDescription = CustomMarker
	form.CustomWarDamage = "Roof collapsed"

	family, err := v.SubmitFamily(form, "ar")
	require.NoError(t, err)
	assert.Equal(t, "My Branch", family.Branch)
	assert.Equal(t, "Roof collapsed", family.WarDamageDescription)
	assert.Equal(t, "married", family.SocialStatus)

	reloaded := FamilyFormFrom(family)
	assert.Equal(t, CustomMarker, reloaded.Branch)
	assert.Equal(t, "My Branch", reloaded.CustomBranch)
	assert.Equal(t, "married", reloaded.SocialStatus)
	assert.Empty(t, reloaded.CustomSocialStatus)
	assert.True(t, reloaded.Visible("customBranch"))
	assert.False(t, reloaded.Visible("customSocialStatus"))
}

func TestFieldErrorLanguage(t *testing.T) {
	v := newTestValidator(t)

	form := validFamilyForm()
	form.HusbandID = "1"

	tests := []struct {
		lang string
		want string
	}{
		{"ar", "رقم الهوية يجب أن يتكون من 9 أرقام"},
		{"", "رقم الهوية يجب أن يتكون من 9 أرقام"},
		{"fr", "رقم الهوية يجب أن يتكون من 9 أرقام"},
		{"en", "national ID must be exactly 9 digits"},
		{"en-GB", "national ID must be exactly 9 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			_, err := v.SubmitFamily(form, tt.lang)
			errs := fieldErrors(t, err)
			if got := errs["husbandId"]; got != tt.want {
				t.Errorf("husbandId error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFamilyFormVisible(t *testing.T) {
	form := validFamilyForm()

	tests := []struct {
		field  string
		toggle func(f *FamilyForm)
	}{
		{"displacementLocation", func(f *FamilyForm) { f.IsDisplaced = true }},
		{"warDamageDescription", func(f *FamilyForm) { f.HasWarDamage = true }},
		{"customBranch", func(f *FamilyForm) { f.Branch = CustomMarker }},
		{"customSocialStatus", func(f *FamilyForm) { f.SocialStatus = CustomMarker }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := form
			if f.Visible(tt.field) {
				t.Errorf("Visible(%q) = true before toggle", tt.field)
			}
			tt.toggle(&f)
			if !f.Visible(tt.field) {
				t.Errorf("Visible(%q) = false after toggle", tt.field)
			}
		})
	}

	if !form.Visible("husbandName") {
		t.Error("Visible(husbandName) = false, want true")
	}
}

func TestSubmitMember(t *testing.T) {
	v := newTestValidator(t)

	form := MemberForm{
		FullName:     "Sara Ahmad",
		BirthDate:    "2015-02-01",
		Gender:       "female",
		Relationship: "daughter",
	}
	member, err := v.SubmitMember(form, "ar")
	require.NoError(t, err)
	assert.Equal(t, "Sara Ahmad", member.FullName)
	assert.False(t, form.Visible("disabilityType"))

	form.Gender = "unknown"
	form.Relationship = "cousin"
	form.NationalID = "12"
	_, err = v.SubmitMember(form, "ar")
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "gender")
	assert.Contains(t, errs, "relationship")
	assert.Contains(t, errs, "nationalId")
}

func TestSubmitRequest(t *testing.T) {
	v := newTestValidator(t)

	req, err := v.SubmitRequest(RequestForm{Type: "medical", Description: "  need insulin for my son  "}, "ar")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "need insulin for my son", req.Description)

	_, err = v.SubmitRequest(RequestForm{Type: "loan", Description: "short"}, "ar")
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "description")
}

func TestSubmitNotification(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.SubmitNotification(NotificationForm{
		Title:   "Distribution",
		Message: "Food parcels on Sunday morning",
		Target:  models.TargetSpecific,
	}, "ar")
	errs := fieldErrors(t, err)
	assert.Equal(t, "يجب اختيار مستلم واحد على الأقل", errs["recipients"])

	n, err := v.SubmitNotification(NotificationForm{
		Title:      "Distribution",
		Message:    "Food parcels on Sunday morning",
		Target:     models.TargetSpecific,
		Recipients: []int64{7},
	}, "ar")
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, n.Recipients)

	n, err = v.SubmitNotification(NotificationForm{
		Title:      "Distribution",
		Message:    "Food parcels on Sunday morning",
		Target:     models.TargetAll,
		Recipients: []int64{7},
	}, "ar")
	require.NoError(t, err)
	assert.Nil(t, n.Recipients)
}

func TestSubmitRegisterPasswordPolicy(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.SubmitRegister(RegisterForm{Username: "ahmad", Password: "abc"}, domain.DefaultPasswordPolicy, "ar")
	errs := fieldErrors(t, err)
	assert.Len(t, strings.Split(errs["password"], "\n"), 3)

	user, err := v.SubmitRegister(RegisterForm{Username: "ahmad", Password: "Abcdef12", Email: "a@example.com"}, domain.DefaultPasswordPolicy, "ar")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHead, user.Role)

	_, err = v.SubmitRegister(RegisterForm{Username: "a b", Password: "Abcdef12", Email: "nope"}, domain.DefaultPasswordPolicy, "ar")
	errs = fieldErrors(t, err)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
}

func TestSubmitUserRole(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.SubmitUser(UserForm{Username: "boss", Password: "Abcdef12", Role: models.RoleRoot}, domain.DefaultPasswordPolicy, "ar")
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "role")

	user, err := v.SubmitUser(UserForm{Username: "helper", Password: "Abcdef12", Role: models.RoleAdmin, DualRole: true}, domain.DefaultPasswordPolicy, "ar")
	require.NoError(t, err)
	assert.True(t, user.DualRole)

	_, err = v.SubmitUser(UserForm{Username: "family", Password: "Abcdef12", Role: models.RoleHead, DualRole: true}, domain.DefaultPasswordPolicy, "en")
	errs = fieldErrors(t, err)
	assert.Equal(t, "only admins can hold a dual role", errs["dualRole"])
}

func TestChoice(t *testing.T) {
	known := ParseChoice("alnogra", domain.Branches)
	assert.False(t, known.IsCustom())
	assert.Equal(t, "alnogra", known.Option())

	custom := ParseChoice("My Branch", domain.Branches)
	assert.True(t, custom.IsCustom())
	assert.Equal(t, CustomMarker, custom.Option())
	assert.Equal(t, "My Branch", custom.Text())

	data, err := json.Marshal(custom)
	require.NoError(t, err)
	assert.JSONEq(t, `"My Branch"`, string(data))

	assert.Equal(t, "typed", selectChoice(CustomMarker, " typed ").Value())
	assert.Equal(t, "married", selectChoice("married", "ignored").Value())
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("b", "second")
	errs.Add("a", "first")
	errs.Add("a", "again")

	assert.Equal(t, "validation failed: a: first\nagain; b: second", errs.Error())
}
