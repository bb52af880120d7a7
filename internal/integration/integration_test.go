package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meishi-app/backend/internal/models"
	"github.com/meishi-app/backend/internal/service"
	"github.com/meishi-app/backend/internal/testhelpers"
	"github.com/meishi-app/backend/internal/types"
)

// TestUserWorkflowAgainstPostgres runs the full register/edit/delete
// lifecycle against a real PostgreSQL instance. Requires docker.
func TestUserWorkflowAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupPostgresDatabase(t)
	logger := zap.NewNop()
	users := service.NewUserService(db, logger)
	cleanup := service.NewCleanupService(db, logger)
	ctx := context.Background()

	require.NoError(t, users.CreateUserWithSkills(ctx, &types.UserForm{
		UserID:      "alice",
		Name:        "Alice",
		Description: "hi",
		SkillIDs:    []int64{1, 2},
		GithubID:    "alice",
	}))

	card, err := users.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, card.Skills, 2)
	assert.Equal(t, "https://github.com/alice", card.GithubURL)

	require.NoError(t, users.UpdateUserWithSkills(ctx, "alice", &types.UserUpdateForm{
		Name:        "Alice",
		Description: "hi",
		SkillIDs:    []int64{3},
	}))

	card, err = users.GetUserCard(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, int64(3), card.Skills[0].ID)

	// Cleanup with a cutoff in the past leaves the fresh user alone
	deleted, err := cleanup.DeleteUsersOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// Backdate and run again: user and join rows are purged
	require.NoError(t, db.Model(&models.User{}).
		Where("user_id = ?", "alice").
		UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)

	deleted, err = cleanup.DeleteUsersOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = users.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	var joinRows int64
	require.NoError(t, db.Model(&models.UserSkill{}).
		Where("user_id = ?", "alice").Count(&joinRows).Error)
	assert.Zero(t, joinRows)
}
