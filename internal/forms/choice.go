package forms

import (
	"encoding/json"
	"strings"

	"familyaid/internal/domain"
)

// CustomMarker is the option value that switches an enumerated field to free text
const CustomMarker = "custom"

// Choice is the value of an enumerated field that also accepts free text:
// either a known code or a custom text.
type Choice struct {
	value  string
	custom bool
}

// Known returns a choice holding an enumerated code
func Known(code string) Choice {
	return Choice{value: code}
}

// Custom returns a choice holding free text
func Custom(text string) Choice {
	return Choice{value: strings.TrimSpace(text), custom: true}
}

// ParseChoice classifies a stored value. Values outside the table are custom.
func ParseChoice(value string, table domain.LabelTable) Choice {
	if value == "" || table.Has(value) {
		return Known(value)
	}
	return Custom(value)
}

// selectChoice builds a choice from an option select and its free-text input
func selectChoice(selected, text string) Choice {
	if selected == CustomMarker {
		return Custom(text)
	}
	return Known(selected)
}

// IsCustom reports whether the choice holds free text
func (c Choice) IsCustom() bool { return c.custom }

// Value is the value stored and sent on the wire
func (c Choice) Value() string { return c.value }

// Option is the value of the option select: the code, or CustomMarker for free text
func (c Choice) Option() string {
	if c.custom {
		return CustomMarker
	}
	return c.value
}

// Text is the free-text input content, empty for known codes
func (c Choice) Text() string {
	if c.custom {
		return c.value
	}
	return ""
}

func (c Choice) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}
