package service

import (
	"context"

	"github.com/meishi-app/backend/internal/models"
	"gorm.io/gorm"
)

// SkillService reads the fixed skill catalog. The catalog is seeded by
// migration and never written by the application.
type SkillService struct {
	db *gorm.DB
}

// Ensure SkillService implements ISkillService
var _ ISkillService = (*SkillService)(nil)

// NewSkillService creates a new SkillService instance
func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

// ListSkills returns the full catalog ordered by id.
func (s *SkillService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.WithContext(ctx).Order("id").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}
