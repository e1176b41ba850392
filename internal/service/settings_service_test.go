package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyaid/internal/domain"
	"familyaid/internal/forms"
	"familyaid/internal/models"
)

func TestSettingsDefaults(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Load(context.Background()))

	got := env.settings.Get()
	assert.Equal(t, DefaultSiteTitle, got.SiteTitle)
	assert.Equal(t, DefaultLanguage, got.Language)
	assert.Equal(t, domain.DefaultPasswordPolicy, env.settings.PasswordPolicy())
}

func TestSettingsLoadIgnoresMalformedValues(t *testing.T) {
	env := newTestEnv(t)
	env.store.settings[models.SettingMinPasswordLength] = "ten"
	env.store.settings[models.SettingRequireUppercase] = "maybe"
	env.store.settings[models.SettingRequireNumbers] = "false"
	env.store.settings[models.SettingLanguage] = "fr"
	require.NoError(t, env.settings.Load(context.Background()))

	policy := env.settings.PasswordPolicy()
	assert.Equal(t, 8, policy.MinLength)
	assert.True(t, policy.RequireUppercase)
	assert.False(t, policy.RequireNumbers)
	assert.Equal(t, "ar", env.settings.Language())
}

func TestSettingsSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := env.seedUser(t, "root", models.RoleRoot, "")
	env.store.settings[models.SettingRequireUppercase] = "false"

	minLen := 12
	saved, err := env.settings.Save(ctx, root, forms.SettingsForm{
		SiteTitle:         "Aid Portal",
		SiteName:          "Portal",
		Language:          "en",
		MinPasswordLength: &minLen,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aid Portal", saved.SiteTitle)
	assert.Equal(t, "en", env.settings.Language())

	policy := env.settings.PasswordPolicy()
	assert.Equal(t, 12, policy.MinLength)
	assert.True(t, policy.RequireUppercase, "unset option falls back to default")
	assert.NotContains(t, env.store.settings, models.SettingRequireUppercase)

	_, err = env.settings.Save(ctx, root, forms.SettingsForm{Language: "de"})
	var errs forms.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "siteTitle")
	assert.Contains(t, errs, "language")
}
