package models

import (
	"time"
)

// User is a profile record keyed by the user-chosen handle. The handle is
// immutable after registration; every other field is mutable through the
// edit workflow.
type User struct {
	UserID      string    `gorm:"column:user_id;primaryKey;size:50" json:"user_id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	GithubID    string    `gorm:"column:github_id;size:50" json:"github_id"`
	QiitaID     string    `gorm:"column:qiita_id;size:50" json:"qiita_id"`
	XID         string    `gorm:"column:x_id;size:50" json:"x_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
