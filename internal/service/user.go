package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/meishi-app/backend/internal/models"
	"github.com/meishi-app/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is the explicit absent result for lookups by handle.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a registration reuses a taken handle.
	ErrUserExists = errors.New("user already exists")

	// Phase sentinels for the multi-step write workflows. Callers see a
	// single failure; logs and errors.Is identify which phase broke.
	ErrCreateUser   = errors.New("user insert failed")
	ErrAttachSkills = errors.New("skill attach failed")
	ErrUpdateUser   = errors.New("user update failed")
	ErrDetachSkills = errors.New("skill detach failed")
	ErrDeleteUser   = errors.New("user delete failed")
)

// UserService owns the user/skill persistence workflow. The two-table
// writes are not transactional: create compensates by deleting the user
// row when skill attachment fails, and update replaces the skill set
// delete-then-insert. Readers may observe the intermediate state; that
// window is an accepted limitation of the design.
type UserService struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validator.Validate
}

// Ensure UserService implements IUserService
var _ IUserService = (*UserService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{
		db:       db,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreateUserWithSkills registers a profile and attaches its skill set.
// The user row is inserted first; if any skill row fails to insert, the
// user row and any join rows that did make it are deleted again so a
// user never remains with a partial skill set.
func (s *UserService) CreateUserWithSkills(ctx context.Context, form *types.UserForm) error {
	if err := s.validate.Struct(form); err != nil {
		return err
	}

	exists, err := s.UserExists(ctx, form.UserID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	user := models.User{
		UserID:      form.UserID,
		Name:        form.Name,
		Description: form.Description,
		GithubID:    form.GithubID,
		QiitaID:     form.QiitaID,
		XID:         form.XID,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		s.logger.Error("user insert failed", zap.String("user_id", form.UserID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrCreateUser, err)
	}

	userSkills := make([]models.UserSkill, 0, len(form.SkillIDs))
	for _, skillID := range form.SkillIDs {
		userSkills = append(userSkills, models.UserSkill{
			UserID:  form.UserID,
			SkillID: skillID,
		})
	}
	if err := s.db.WithContext(ctx).Create(&userSkills).Error; err != nil {
		s.logger.Error("skill attach failed, rolling back user",
			zap.String("user_id", form.UserID), zap.Error(err))
		s.compensateCreate(ctx, form.UserID)
		return fmt.Errorf("%w: %v", ErrAttachSkills, err)
	}

	return nil
}

// compensateCreate undoes a half-finished registration. Join rows go
// first so a retry never finds a skill row without its user. Both
// deletes are attempted even if the first fails; each is a no-op when
// there is nothing left to remove, so the compensation is retryable.
func (s *UserService) compensateCreate(ctx context.Context, userID string) {
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserSkill{}).Error; err != nil {
		s.logger.Error("compensating delete of user_skill rows failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.User{}).Error; err != nil {
		s.logger.Error("compensating delete of user row failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// UpdateUserWithSkills updates the mutable profile fields and replaces
// the attached skill set with form.SkillIDs. An empty set is allowed and
// leaves the user with zero skills. The field update is not rolled back
// if skill replacement fails; that asymmetry with create is deliberate.
func (s *UserService) UpdateUserWithSkills(ctx context.Context, userID string, form *types.UserUpdateForm) error {
	if err := s.validate.Struct(form); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"name":        form.Name,
			"description": form.Description,
			"github_id":   form.GithubID,
			"qiita_id":    form.QiitaID,
			"x_id":        form.XID,
		})
	if res.Error != nil {
		s.logger.Error("user update failed", zap.String("user_id", userID), zap.Error(res.Error))
		return fmt.Errorf("%w: %v", ErrUpdateUser, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	// Old rows must be gone before the new set goes in; aborting here on
	// error guarantees stale and new rows never mix.
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserSkill{}).Error; err != nil {
		s.logger.Error("skill detach failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDetachSkills, err)
	}

	if len(form.SkillIDs) == 0 {
		return nil
	}

	userSkills := make([]models.UserSkill, 0, len(form.SkillIDs))
	for _, skillID := range form.SkillIDs {
		userSkills = append(userSkills, models.UserSkill{
			UserID:  userID,
			SkillID: skillID,
		})
	}
	if err := s.db.WithContext(ctx).Create(&userSkills).Error; err != nil {
		s.logger.Error("skill attach failed during update",
			zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAttachSkills, err)
	}

	return nil
}

// DeleteUser removes a profile and its skill rows, join rows first. A
// handle with no rows deletes cleanly as a no-op.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserSkill{}).Error; err != nil {
		s.logger.Error("skill detach failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDetachSkills, err)
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.User{}).Error; err != nil {
		s.logger.Error("user delete failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDeleteUser, err)
	}
	return nil
}

// GetUser retrieves the raw profile row for a handle.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserCard retrieves the display projection of a profile: attached
// skills joined in and social handles rendered as URLs.
func (s *UserService) GetUserCard(ctx context.Context, userID string) (*types.UserCard, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := s.attachedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &types.UserCard{
		UserID:      user.UserID,
		Name:        user.Name,
		Description: user.Description,
		Skills:      skills,
		GithubURL:   socialURL("https://github.com/", user.GithubID),
		QiitaURL:    socialURL("https://qiita.com/", user.QiitaID),
		XURL:        socialURL("https://x.com/", user.XID),
		CreatedAt:   user.CreatedAt,
	}, nil
}

// GetUserForEdit retrieves the edit projection: raw social handles and
// the attached skill IDs used as form defaults.
func (s *UserService) GetUserForEdit(ctx context.Context, userID string) (*types.UserEditView, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := s.attachedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	skillIDs := make([]int64, 0, len(skills))
	for _, sk := range skills {
		skillIDs = append(skillIDs, sk.ID)
	}

	return &types.UserEditView{
		UserID:      user.UserID,
		Name:        user.Name,
		Description: user.Description,
		Skills:      skills,
		SkillIDs:    skillIDs,
		GithubID:    user.GithubID,
		QiitaID:     user.QiitaID,
		XID:         user.XID,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// ListUsers retrieves all profiles.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UserExists reports whether a handle is already taken. The caller's
// check-then-insert is not atomic; the primary key on users.user_id
// makes the store reject the loser if two registrations race.
func (s *UserService) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserService) attachedSkills(ctx context.Context, userID string) ([]types.SkillView, error) {
	skills := make([]types.SkillView, 0)
	err := s.db.WithContext(ctx).Table("skills").
		Select("skills.id, skills.name").
		Joins("JOIN user_skill ON user_skill.skill_id = skills.id").
		Where("user_skill.user_id = ?", userID).
		Order("skills.id").
		Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func socialURL(base, handle string) string {
	if handle == "" {
		return ""
	}
	return base + handle
}
