package models

import (
	"time"
)

// Skill is one entry of the fixed tag catalog. The application only reads
// this table; rows are seeded by migration.
type Skill struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Skill) TableName() string {
	return "skills"
}
