package models

// Setting keys stored in the settings table
const (
	SettingSiteTitle           = "site_title"
	SettingSiteName            = "site_name"
	SettingSiteLogo            = "site_logo"
	SettingLanguage            = "language"
	SettingMinPasswordLength   = "min_password_length"
	SettingRequireUppercase    = "require_uppercase"
	SettingRequireLowercase    = "require_lowercase"
	SettingRequireNumbers      = "require_numbers"
	SettingRequireSpecialChars = "require_special_chars"
)

// Settings is the typed view of the site settings.
// Password fields are pointers so unset values fall back to policy defaults.
type Settings struct {
	SiteTitle           string `json:"siteTitle"`
	SiteName            string `json:"siteName"`
	SiteLogo            string `json:"siteLogo"`
	Language            string `json:"language"`
	MinPasswordLength   *int   `json:"minPasswordLength,omitempty"`
	RequireUppercase    *bool  `json:"requireUppercase,omitempty"`
	RequireLowercase    *bool  `json:"requireLowercase,omitempty"`
	RequireNumbers      *bool  `json:"requireNumbers,omitempty"`
	RequireSpecialChars *bool  `json:"requireSpecialChars,omitempty"`
}
