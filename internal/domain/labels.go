package domain

// LabelTable maps internal codes to Arabic display strings, keeping the
// order in which options are offered.
type LabelTable struct {
	codes  []string
	labels map[string]string
}

func newLabelTable(pairs ...string) LabelTable {
	t := LabelTable{labels: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.codes = append(t.codes, pairs[i])
		t.labels[pairs[i]] = pairs[i+1]
	}
	return t
}

// Label returns the display string for code. Unknown codes are returned
// unchanged so free-text values still render.
func (t LabelTable) Label(code string) string {
	if label, ok := t.labels[code]; ok {
		return label
	}
	return code
}

// Has reports whether code is a known enumerated value
func (t LabelTable) Has(code string) bool {
	_, ok := t.labels[code]
	return ok
}

// Codes returns the known codes in display order
func (t LabelTable) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

var (
	RequestStatuses = newLabelTable(
		"pending", "قيد الانتظار",
		"approved", "مقبول",
		"rejected", "مرفوض",
	)

	RequestTypes = newLabelTable(
		"financial", "مساعدة مالية",
		"medical", "مساعدة طبية",
		"damage", "أضرار",
	)

	Genders = newLabelTable(
		"male", "ذكر",
		"female", "أنثى",
	)

	Relationships = newLabelTable(
		"son", "ابن",
		"daughter", "ابنة",
		"mother", "أم",
		"father", "أب",
		"brother", "أخ",
		"sister", "أخت",
		"grandfather", "جد",
		"grandmother", "جدة",
		"uncle", "عم",
		"aunt", "عمة",
		"other", "أخرى",
	)

	Branches = newLabelTable(
		"alnogra", "النقرة",
		"albalad", "البلد",
		"aljadida", "الجديدة",
		"alsharqia", "الشرقية",
		"algharbia", "الغربية",
	)

	DamageDescriptions = newLabelTable(
		"total", "هدم كلي",
		"partial", "هدم جزئي",
		"minor", "أضرار طفيفة",
	)

	SocialStatuses = newLabelTable(
		"married", "متزوج",
		"divorced", "مطلق",
		"widowed", "أرمل",
	)

	HousingStatuses = newLabelTable(
		"owned", "ملك",
		"rented", "إيجار",
		"relatives", "عند الأقارب",
		"shelter", "مركز إيواء",
		"tent", "خيمة",
	)

	NotificationTargets = newLabelTable(
		"all", "الجميع",
		"head", "أرباب الأسر",
		"admin", "المشرفون",
		"specific", "مستخدمون محددون",
		"urgent", "عاجل",
	)

	Roles = newLabelTable(
		"root", "المدير العام",
		"admin", "مشرف",
		"head", "رب أسرة",
	)
)

// Label shortcuts for the tables above
func RequestStatusLabel(code string) string { return RequestStatuses.Label(code) }
func RequestTypeLabel(code string) string { return RequestTypes.Label(code) }
func GenderLabel(code string) string { return Genders.Label(code) }
func RelationshipLabel(code string) string { return Relationships.Label(code) }
func BranchLabel(code string) string { return Branches.Label(code) }
func DamageDescriptionLabel(code string) string { return DamageDescriptions.Label(code) }
func SocialStatusLabel(code string) string { return SocialStatuses.Label(code) }
func HousingStatusLabel(code string) string { return HousingStatuses.Label(code) }
func TargetLabel(code string) string { return NotificationTargets.Label(code) }
func RoleLabel(code string) string { return Roles.Label(code) }
