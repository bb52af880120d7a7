package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSkill associates one User with one Skill. Rows are owned by their
// User: created on registration, replaced wholesale on edit, and deleted
// with the user.
type UserSkill struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;size:50;not null;index" json:"user_id"`
	SkillID   int64     `gorm:"column:skill_id;not null" json:"skill_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserSkill) TableName() string {
	return "user_skill"
}

func (us *UserSkill) BeforeCreate(tx *gorm.DB) error {
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	return nil
}
