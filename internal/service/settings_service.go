package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"familyaid/internal/domain"
	"familyaid/internal/forms"
	"familyaid/internal/models"
)

// Defaults used until an admin saves the site settings
const (
	DefaultSiteTitle = "بوابة مساعدات العائلات"
	DefaultSiteName  = "بوابة العائلات"
	DefaultLanguage  = "ar"
)

// SettingsService caches the site settings in memory.
// Every write goes through Update, which reloads the cache afterwards.
type SettingsService struct {
	store     SettingsStore
	validator *forms.Validator
	activity  *ActivityService

	mu      sync.RWMutex
	current models.Settings
}

// NewSettingsService creates a settings service holding the defaults until Load is called
func NewSettingsService(store SettingsStore, validator *forms.Validator, activity *ActivityService) *SettingsService {
	return &SettingsService{
		store:     store,
		validator: validator,
		activity:  activity,
		current:   defaultSettings(),
	}
}

func defaultSettings() models.Settings {
	return models.Settings{
		SiteTitle: DefaultSiteTitle,
		SiteName:  DefaultSiteName,
		Language:  DefaultLanguage,
	}
}

// Load reads all settings from the store into the cache
func (s *SettingsService) Load(ctx context.Context) error {
	values, err := s.store.GetAllSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings := parseSettings(values)

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the cached settings
func (s *SettingsService) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Language returns the interface language used for validation messages
func (s *SettingsService) Language() string {
	return s.Get().Language
}

// PasswordPolicy resolves the password rules, using defaults for unset options
func (s *SettingsService) PasswordPolicy() domain.PasswordPolicy {
	cur := s.Get()
	return domain.PasswordPolicyOptions{
		MinLength:           cur.MinPasswordLength,
		RequireUppercase:    cur.RequireUppercase,
		RequireLowercase:    cur.RequireLowercase,
		RequireNumbers:      cur.RequireNumbers,
		RequireSpecialChars: cur.RequireSpecialChars,
	}.Resolve()
}

// Save validates the form and stores the new settings
func (s *SettingsService) Save(ctx context.Context, actor *models.User, form forms.SettingsForm) (models.Settings, error) {
	settings, err := s.validator.SubmitSettings(form, s.Language())
	if err != nil {
		return models.Settings{}, err
	}
	if err := s.update(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	s.activity.Record(ctx, actor, ActionSettings, "settings", 0, settings.SiteTitle)
	return s.Get(), nil
}

// update persists settings. Password options left nil are deleted so they
// fall back to the defaults.
func (s *SettingsService) update(ctx context.Context, settings models.Settings) error {
	values := map[string]string{
		models.SettingSiteTitle: settings.SiteTitle,
		models.SettingSiteName:  settings.SiteName,
		models.SettingSiteLogo:  settings.SiteLogo,
		models.SettingLanguage:  settings.Language,
	}
	var unset []string

	if settings.MinPasswordLength != nil {
		values[models.SettingMinPasswordLength] = strconv.Itoa(*settings.MinPasswordLength)
	} else {
		unset = append(unset, models.SettingMinPasswordLength)
	}
	flags := []struct {
		key string
		val *bool
	}{
		{models.SettingRequireUppercase, settings.RequireUppercase},
		{models.SettingRequireLowercase, settings.RequireLowercase},
		{models.SettingRequireNumbers, settings.RequireNumbers},
		{models.SettingRequireSpecialChars, settings.RequireSpecialChars},
	}
	for _, f := range flags {
		if f.val != nil {
			values[f.key] = strconv.FormatBool(*f.val)
		} else {
			unset = append(unset, f.key)
		}
	}

	if err := s.store.SetSettings(ctx, values); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	for _, key := range unset {
		if err := s.store.DeleteSetting(ctx, key); err != nil {
			return fmt.Errorf("failed to reset setting %s: %w", key, err)
		}
	}
	return s.Load(ctx)
}

// parseSettings converts stored strings into typed settings.
// Malformed numbers and booleans are treated as unset.
func parseSettings(values map[string]string) models.Settings {
	settings := defaultSettings()
	if v := values[models.SettingSiteTitle]; v != "" {
		settings.SiteTitle = v
	}
	if v := values[models.SettingSiteName]; v != "" {
		settings.SiteName = v
	}
	settings.SiteLogo = values[models.SettingSiteLogo]
	if v := values[models.SettingLanguage]; v == "ar" || v == "en" {
		settings.Language = v
	}
	if v, ok := values[models.SettingMinPasswordLength]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			settings.MinPasswordLength = &n
		}
	}
	settings.RequireUppercase = parseBool(values, models.SettingRequireUppercase)
	settings.RequireLowercase = parseBool(values, models.SettingRequireLowercase)
	settings.RequireNumbers = parseBool(values, models.SettingRequireNumbers)
	settings.RequireSpecialChars = parseBool(values, models.SettingRequireSpecialChars)
	return settings
}

func parseBool(values map[string]string, key string) *bool {
	v, ok := values[key]
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
