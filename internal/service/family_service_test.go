package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

func TestFamilyRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	head := env.seedUser(t, "head1", models.RoleHead, "")

	family, err := env.families.Register(ctx, head, validFamilyForm())
	require.NoError(t, err)
	require.NotNil(t, family.UserID)
	assert.Equal(t, head.ID, *family.UserID)
	assert.Equal(t, models.FamilyActive, family.Status)

	_, err = env.families.Register(ctx, head, validFamilyForm())
	assert.ErrorIs(t, err, ErrFamilyExists)

	other := env.seedUser(t, "head2", models.RoleHead, "")
	_, err = env.families.Register(ctx, other, validFamilyForm())
	var errs forms.FieldErrors
	require.True(t, errors.As(err, &errs), "duplicate husband ID should be a field error")
	assert.Contains(t, errs, "husbandId")

	admin := env.seedUser(t, "admin1", models.RoleAdmin, "")
	_, err = env.families.Register(ctx, admin, validFamilyForm())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestFamilyRegisterValidationSkipsStore(t *testing.T) {
	env := newTestEnv(t)
	head := &models.User{ID: 1, Role: models.RoleHead}

	form := validFamilyForm()
	form.MaleCount = 4
	form.FemaleCount = 4

	_, err := env.families.Register(context.Background(), head, form)
	var errs forms.FieldErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "maleCount")
	assert.Contains(t, errs, "femaleCount")
	assert.Zero(t, env.store.calls)
}

func TestFamilyUpdateKeepsOwnerAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	head := env.seedUser(t, "head1", models.RoleHead, "")
	admin := env.seedUser(t, "admin1", models.RoleAdmin, "")

	family, err := env.families.Register(ctx, head, validFamilyForm())
	require.NoError(t, err)
	require.NoError(t, env.families.SetStatus(ctx, admin, family.ID, models.FamilyInactive))

	form := validFamilyForm()
	form.Branch = forms.CustomMarker
	form.CustomBranch = "My Branch"
	updated, err := env.families.Update(ctx, admin, family.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "My Branch", updated.Branch)
	assert.Equal(t, models.FamilyInactive, updated.Status)
	assert.Equal(t, head.ID, *updated.UserID)

	reloaded := forms.FamilyFormFrom(*env.store.families[family.ID])
	assert.Equal(t, forms.CustomMarker, reloaded.Branch)
	assert.Equal(t, "My Branch", reloaded.CustomBranch)

	_, err = env.families.Update(ctx, admin, 999, validFamilyForm())
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}

func TestFamilySetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "admin1", models.RoleAdmin, "")

	assert.ErrorIs(t, env.families.SetStatus(ctx, admin, 1, "deleted"), ErrInvalidStatus)
	assert.ErrorIs(t, env.families.SetStatus(ctx, admin, 1, models.FamilyInactive), ErrFamilyNotFound)
}

func TestFamilyList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i, branch := range []string{"alnogra", "albalad", "alnogra"} {
		head := env.seedUser(t, "head"+string(rune('a'+i)), models.RoleHead, "")
		form := validFamilyForm()
		form.HusbandID = "12345678" + string(rune('0'+i))
		form.Branch = branch
		_, err := env.families.Register(ctx, head, form)
		require.NoError(t, err)
	}

	page, err := env.families.List(ctx, views.FamilyFilters{Branch: "alnogra"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "branch=alnogra", page.FiltersKey)

	page, err = env.families.List(ctx, views.FamilyFilters{Query: "ahmad", Branch: views.AllValue}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestFamilyMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	head := env.seedUser(t, "head1", models.RoleHead, "")
	family, err := env.families.Register(ctx, head, validFamilyForm())
	require.NoError(t, err)

	form := forms.MemberForm{
		FullName:     "Sara Ahmad",
		BirthDate:    "2015-03-01",
		Gender:       "female",
		Relationship: "daughter",
	}
	member, err := env.families.AddMember(ctx, head, family.ID, form)
	require.NoError(t, err)
	assert.Equal(t, family.ID, member.FamilyID)

	form.FullName = "Sara Ahmad Saleh"
	updated, err := env.families.UpdateMember(ctx, head, family.ID, member.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Sara Ahmad Saleh", updated.FullName)

	_, err = env.families.UpdateMember(ctx, head, family.ID+100, member.ID, form)
	assert.ErrorIs(t, err, ErrMemberNotFound, "members of another family are not reachable")

	withMembers, err := env.families.Get(ctx, family.ID)
	require.NoError(t, err)
	assert.Len(t, withMembers.Members, 1)

	require.NoError(t, env.families.DeleteMember(ctx, head, family.ID, member.ID))
	assert.ErrorIs(t, env.families.DeleteMember(ctx, head, family.ID, member.ID), ErrMemberNotFound)
}
