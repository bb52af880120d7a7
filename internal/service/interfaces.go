package service

import (
	"context"
	"time"

	"github.com/meishi-app/backend/internal/models"
	"github.com/meishi-app/backend/internal/types"
)

// IUserService defines the interface for profile persistence operations
type IUserService interface {
	CreateUserWithSkills(ctx context.Context, form *types.UserForm) error
	UpdateUserWithSkills(ctx context.Context, userID string, form *types.UserUpdateForm) error
	DeleteUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserCard(ctx context.Context, userID string) (*types.UserCard, error)
	GetUserForEdit(ctx context.Context, userID string) (*types.UserEditView, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// ISkillService defines the interface for skill catalog reads
type ISkillService interface {
	ListSkills(ctx context.Context) ([]models.Skill, error)
}

// ICleanupService defines the interface for the bulk deletion workflows
// run by the periodic cleanup trigger
type ICleanupService interface {
	DeleteAllUsers(ctx context.Context) (int64, error)
	DeleteAllUserSkills(ctx context.Context) (int64, error)
	DeleteUsersOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteUsersInRange(ctx context.Context, start, end time.Time) (int64, error)
}
