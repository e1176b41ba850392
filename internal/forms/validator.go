// Package forms validates the family, member, request and notification
// forms and turns them into records.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/language"

	"familyaid/internal/domain"
)

var (
	nationalIDRegex = regexp.MustCompile(`^[0-9]{9}$`)
	phoneRegex      = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	usernameRegex   = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

	supportedLanguages = []language.Tag{language.Arabic, language.English}
)

// custom validation tags
const (
	nationalIDTag   = "nationalid"
	phoneTag        = "phone"
	birthDateTag    = "birthdate"
	usernameTag     = "username"
	branchTag       = "branch"
	socialStatusTag = "socialstatus"
	damageTag       = "damage"
	housingTag      = "housing"
	genderTag       = "gender"
	relationshipTag = "relationship"
	requestTypeTag  = "requesttype"
	targetTag       = "target"
	memberCountsTag = "membercounts"
	recipientsTag   = "recipients"
	dualRoleTag     = "dualrole"
)

// arabicTexts covers every tag the forms use. {0} is the tag parameter.
var arabicTexts = map[string]string{
	"required":      "هذا الحقل مطلوب",
	"required_if":   "هذا الحقل مطلوب",
	"min":           "يجب ألا يقل عن {0}",
	"max":           "يجب ألا يزيد عن {0}",
	"gte":           "يجب أن تكون القيمة {0} أو أكثر",
	"lte":           "يجب أن تكون القيمة {0} أو أقل",
	"email":         "البريد الإلكتروني غير صالح",
	"oneof":         "القيمة غير مسموح بها",
	nationalIDTag:   "رقم الهوية يجب أن يتكون من 9 أرقام",
	phoneTag:        "رقم الهاتف غير صالح",
	birthDateTag:    "تاريخ الميلاد غير صالح",
	usernameTag:     "اسم المستخدم يقبل الحروف الإنجليزية والأرقام والشرطة السفلية فقط",
	branchTag:       "الفرع غير صالح",
	socialStatusTag: "الحالة الاجتماعية غير صالحة",
	damageTag:       "وصف الضرر غير صالح",
	housingTag:      "حالة السكن غير صالحة",
	genderTag:       "الجنس غير صالح",
	relationshipTag: "صلة القرابة غير صالحة",
	requestTypeTag:  "نوع الطلب غير صالح",
	targetTag:       "الفئة المستهدفة غير صالحة",
	memberCountsTag: "مجموع الذكور والإناث يتجاوز عدد أفراد الأسرة",
	recipientsTag:   "يجب اختيار مستلم واحد على الأقل",
	dualRoleTag:     "الدور المزدوج متاح للمشرفين فقط",
}

// englishTexts overrides or extends the default English translations
var englishTexts = map[string]string{
	"required_if":   "this field is required",
	nationalIDTag:   "national ID must be exactly 9 digits",
	phoneTag:        "invalid phone number",
	birthDateTag:    "invalid birth date",
	usernameTag:     "only letters, digits, dots and underscores are allowed",
	branchTag:       "invalid branch",
	socialStatusTag: "invalid social status",
	damageTag:       "invalid damage description",
	housingTag:      "invalid housing status",
	genderTag:       "invalid gender",
	relationshipTag: "invalid relationship",
	requestTypeTag:  "invalid request type",
	targetTag:       "invalid target",
	memberCountsTag: "male and female counts exceed the total members",
	recipientsTag:   "at least one recipient is required",
	dualRoleTag:     "only admins can hold a dual role",
}

// Validator validates forms and renders errors in Arabic or English.
// It is safe for concurrent use once built.
type Validator struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
	matcher  language.Matcher
}

// New builds a Validator with every custom tag and translation registered
func New() (*Validator, error) {
	validate := validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validations := map[string]validator.Func{
		nationalIDTag:   regexValidation(nationalIDRegex),
		phoneTag:        regexValidation(phoneRegex),
		usernameTag:     regexValidation(usernameRegex),
		birthDateTag:    birthDateValidation,
		branchTag:       choiceValidation(domain.Branches),
		socialStatusTag: choiceValidation(domain.SocialStatuses),
		damageTag:       choiceValidation(domain.DamageDescriptions),
		housingTag:      enumValidation(domain.HousingStatuses),
		genderTag:       enumValidation(domain.Genders),
		relationshipTag: enumValidation(domain.Relationships),
		requestTypeTag:  enumValidation(domain.RequestTypes),
		targetTag:       enumValidation(domain.NotificationTargets),
	}
	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}

	validate.RegisterStructValidation(familyStructValidation, FamilyForm{})
	validate.RegisterStructValidation(notificationStructValidation, NotificationForm{})
	validate.RegisterStructValidation(userStructValidation, UserForm{})

	arLocale := ar.New()
	uni := ut.New(arLocale, arLocale, en.New())

	arTrans, _ := uni.GetTranslator("ar")
	for tag, text := range arabicTexts {
		if err := registerTranslation(validate, arTrans, tag, text); err != nil {
			return nil, err
		}
	}

	enTrans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}
	for tag, text := range englishTexts {
		if err := registerTranslation(validate, enTrans, tag, text); err != nil {
			return nil, err
		}
	}

	return &Validator{
		validate: validate,
		uni:      uni,
		matcher:  language.NewMatcher(supportedLanguages),
	}, nil
}

// registerTranslation registers text for tag, replacing any default
func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(tag, fe.Param())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
}

// Translator picks the translator for a language preference such as "en" or
// "ar-PS". Anything unmatched gets Arabic.
func (v *Validator) Translator(lang string) ut.Translator {
	tag, _, _ := v.matcher.Match(language.Make(lang))
	base, _ := tag.Base()
	if trans, found := v.uni.GetTranslator(base.String()); found {
		return trans
	}
	trans, _ := v.uni.GetTranslator("ar")
	return trans
}

// Check validates s and returns its field errors, or nil when valid
func (v *Validator) Check(s any, lang string) FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrs.Add("_", err.Error())
		return fieldErrs
	}

	trans := v.Translator(lang)
	for _, fe := range verrs {
		fieldErrs.Add(fe.Field(), fe.Translate(trans))
	}
	return fieldErrs
}

// Custom Validators

func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// birthDateValidation accepts a parseable date that is not in the future
func birthDateValidation(fl validator.FieldLevel) bool {
	_, err := domain.AgeInYears(fl.Field().String())
	return err == nil
}

// enumValidation accepts only codes of table
func enumValidation(table domain.LabelTable) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return table.Has(fl.Field().String())
	}
}

// choiceValidation accepts codes of table and the custom marker
func choiceValidation(table domain.LabelTable) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == CustomMarker || table.Has(value)
	}
}
