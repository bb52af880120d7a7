package service

import (
	"context"
	"fmt"
	"time"

	"github.com/meishi-app/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupService holds the bulk deletion workflows run by the periodic
// cleanup trigger. All of them are best-effort: a failure aborts further
// deletion but already-deleted rows stay deleted, and every operation is
// a success when it finds nothing to remove, so retries are safe.
type CleanupService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Ensure CleanupService implements ICleanupService
var _ ICleanupService = (*CleanupService)(nil)

// NewCleanupService creates a new CleanupService instance
func NewCleanupService(db *gorm.DB, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		db:     db,
		logger: logger,
	}
}

// DeleteAllUserSkills wipes the user_skill table. Returns the number of
// join rows removed.
func (s *CleanupService) DeleteAllUserSkills(ctx context.Context) (int64, error) {
	// user_id <> '' matches every row; the handle is never empty.
	res := s.db.WithContext(ctx).Where("user_id <> ''").Delete(&models.UserSkill{})
	if res.Error != nil {
		s.logger.Error("bulk delete of user_skill rows failed", zap.Error(res.Error))
		return 0, fmt.Errorf("%w: %v", ErrDetachSkills, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteAllUsers wipes the user_skill table and then the users table.
// Returns the number of user rows removed.
func (s *CleanupService) DeleteAllUsers(ctx context.Context) (int64, error) {
	if _, err := s.DeleteAllUserSkills(ctx); err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).Where("user_id <> ''").Delete(&models.User{})
	if res.Error != nil {
		s.logger.Error("bulk delete of user rows failed", zap.Error(res.Error))
		return 0, fmt.Errorf("%w: %v", ErrDeleteUser, res.Error)
	}

	s.logger.Info("deleted all users", zap.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}

// DeleteUsersOlderThan removes every user registered strictly before
// cutoff, join rows first. No matching users is a successful no-op,
// which also makes repeated runs with the same cutoff idempotent.
func (s *CleanupService) DeleteUsersOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var userIDs []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at < ?", cutoff).
		Pluck("user_id", &userIDs).Error; err != nil {
		s.logger.Error("stale user lookup failed", zap.Error(err))
		return 0, fmt.Errorf("select stale users: %w", err)
	}

	return s.deleteUserSet(ctx, userIDs)
}

// DeleteUsersInRange removes every user whose created_at falls inside
// the closed interval [start, end].
func (s *CleanupService) DeleteUsersInRange(ctx context.Context, start, end time.Time) (int64, error) {
	var userIDs []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Pluck("user_id", &userIDs).Error; err != nil {
		s.logger.Error("ranged user lookup failed", zap.Error(err))
		return 0, fmt.Errorf("select users in range: %w", err)
	}

	return s.deleteUserSet(ctx, userIDs)
}

func (s *CleanupService) deleteUserSet(ctx context.Context, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		s.logger.Info("no users matched, nothing to delete")
		return 0, nil
	}

	if err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&models.UserSkill{}).Error; err != nil {
		s.logger.Error("delete of user_skill rows failed",
			zap.Int("users", len(userIDs)), zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrDetachSkills, err)
	}

	res := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Delete(&models.User{})
	if res.Error != nil {
		s.logger.Error("delete of user rows failed",
			zap.Int("users", len(userIDs)), zap.Error(res.Error))
		return 0, fmt.Errorf("%w: %v", ErrDeleteUser, res.Error)
	}

	s.logger.Info("deleted users", zap.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}
