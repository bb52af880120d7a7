package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meishi-app/backend/internal/models"
	"github.com/meishi-app/backend/internal/service"
	"github.com/meishi-app/backend/internal/testhelpers"
	"github.com/meishi-app/backend/internal/types"
)

func setupUserTest(t *testing.T) (*service.UserService, *gorm.DB) {
	db := testhelpers.SetupTestDatabase(t)
	return service.NewUserService(db, zap.NewNop()), db
}

func validForm() *types.UserForm {
	return &types.UserForm{
		UserID:      "alice",
		Name:        "Alice",
		Description: "hi",
		SkillIDs:    []int64{1, 2},
		GithubID:    "alice",
	}
}

func attachedSkillIDs(t *testing.T, db *gorm.DB, userID string) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, db.Model(&models.UserSkill{}).
		Where("user_id = ?", userID).
		Order("skill_id").
		Pluck("skill_id", &ids).Error)
	return ids
}

func TestCreateUserWithSkills(t *testing.T) {
	svc, db := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	card, err := svc.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", card.UserID)
	assert.Equal(t, "Alice", card.Name)
	require.Len(t, card.Skills, 2)
	assert.Equal(t, int64(1), card.Skills[0].ID)
	assert.Equal(t, "Go", card.Skills[0].Name)
	assert.Equal(t, int64(2), card.Skills[1].ID)
	assert.Equal(t, "https://github.com/alice", card.GithubURL)
	assert.Empty(t, card.QiitaURL)
	assert.Empty(t, card.XURL)

	assert.Equal(t, []int64{1, 2}, attachedSkillIDs(t, db, "alice"))
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupUserTest(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(f *types.UserForm)
	}{
		{"empty handle", func(f *types.UserForm) { f.UserID = "" }},
		{"short handle", func(f *types.UserForm) { f.UserID = "ab" }},
		{"non-alphabetic handle", func(f *types.UserForm) { f.UserID = "alice123" }},
		{"empty name", func(f *types.UserForm) { f.Name = "" }},
		{"empty description", func(f *types.UserForm) { f.Description = "" }},
		{"empty skill set", func(f *types.UserForm) { f.SkillIDs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)
			err := svc.CreateUserWithSkills(ctx, form)
			assert.Error(t, err)
		})
	}

	// Validation failures must not reach the store
	exists, err := svc.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateUserDuplicateHandle(t *testing.T) {
	svc, _ := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	err := svc.CreateUserWithSkills(ctx, validForm())
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestCreateUserSkillFailureRollsBackUser(t *testing.T) {
	svc, db := setupUserTest(t)
	ctx := context.Background()

	// Break the skill attach phase: with the join table gone the user
	// insert succeeds and the user_skill insert fails.
	require.NoError(t, db.Migrator().DropTable(&models.UserSkill{}))

	err := svc.CreateUserWithSkills(ctx, validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrAttachSkills)

	// The compensating delete must have removed the user row
	_, err = svc.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUpdateUserWithSkills(t *testing.T) {
	svc, db := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	update := &types.UserUpdateForm{
		Name:        "Alice B",
		Description: "hello",
		SkillIDs:    []int64{3},
		QiitaID:     "aliceb",
	}
	require.NoError(t, svc.UpdateUserWithSkills(ctx, "alice", update))

	card, err := svc.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", card.Name)
	assert.Equal(t, "hello", card.Description)
	assert.Equal(t, "https://qiita.com/aliceb", card.QiitaURL)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, int64(3), card.Skills[0].ID)

	// No stale rows from the previous set
	assert.Equal(t, []int64{3}, attachedSkillIDs(t, db, "alice"))
}

func TestUpdateUserEmptySkillSet(t *testing.T) {
	svc, db := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	update := &types.UserUpdateForm{
		Name:        "Alice",
		Description: "hi",
	}
	require.NoError(t, svc.UpdateUserWithSkills(ctx, "alice", update))

	assert.Empty(t, attachedSkillIDs(t, db, "alice"))

	card, err := svc.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, card.Skills)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := setupUserTest(t)

	update := &types.UserUpdateForm{
		Name:        "Nobody",
		Description: "missing",
	}
	err := svc.UpdateUserWithSkills(context.Background(), "nobody", update)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, db := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))
	require.NoError(t, svc.DeleteUser(ctx, "alice"))

	_, err := svc.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Empty(t, attachedSkillIDs(t, db, "alice"))

	// Deleting an absent handle is a no-op, not an error
	assert.NoError(t, svc.DeleteUser(ctx, "alice"))
}

func TestGetUserForEdit(t *testing.T) {
	svc, _ := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	view, err := svc.GetUserForEdit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, view.SkillIDs)
	// Edit view carries the raw handle, not the rendered URL
	assert.Equal(t, "alice", view.GithubID)
}

func TestListUsers(t *testing.T) {
	svc, _ := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, validForm()))

	second := validForm()
	second.UserID = "bob"
	second.Name = "Bob"
	require.NoError(t, svc.CreateUserWithSkills(ctx, second))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserLifecycle(t *testing.T) {
	svc, _ := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUserWithSkills(ctx, &types.UserForm{
		UserID:      "alice",
		Name:        "Alice",
		Description: "hi",
		SkillIDs:    []int64{1, 2},
	}))

	card, err := svc.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, card.Skills, 2)

	require.NoError(t, svc.UpdateUserWithSkills(ctx, "alice", &types.UserUpdateForm{
		Name:        "Alice",
		Description: "hi",
		SkillIDs:    []int64{3},
	}))

	card, err = svc.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, int64(3), card.Skills[0].ID)

	require.NoError(t, svc.DeleteUser(ctx, "alice"))

	_, err = svc.GetUserCard(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
