package types

import (
	"time"
)

// UserForm is the registration payload. Field rules mirror the signup
// form: handle at least three letters, alphabetic only; name and bio
// required with length caps; at least one skill must be selected.
type UserForm struct {
	UserID      string  `json:"user_id" validate:"required,min=3,alpha"`
	Name        string  `json:"name" validate:"required,max=50"`
	Description string  `json:"description" validate:"required,max=1000"`
	SkillIDs    []int64 `json:"skill_ids" validate:"required,min=1"`
	GithubID    string  `json:"github_id"`
	QiitaID     string  `json:"qiita_id"`
	XID         string  `json:"x_id"`
}

// UserUpdateForm is the edit payload. Unlike registration, the skill set
// may be empty: the user then ends up with zero attached skills.
type UserUpdateForm struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description string  `json:"description" validate:"required,max=1000"`
	SkillIDs    []int64 `json:"skill_ids"`
	GithubID    string  `json:"github_id"`
	QiitaID     string  `json:"qiita_id"`
	XID         string  `json:"x_id"`
}

// SkillView is a skill as attached to a card.
type SkillView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserCard is the display projection of a profile: skills joined in and
// social handles expanded to full URLs.
type UserCard struct {
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Skills      []SkillView `json:"skills"`
	GithubURL   string      `json:"github_url,omitempty"`
	QiitaURL    string      `json:"qiita_url,omitempty"`
	XURL        string      `json:"x_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UserEditView is the edit projection: raw social handles plus the skill
// ID list used as form defaults.
type UserEditView struct {
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Skills      []SkillView `json:"skills"`
	SkillIDs    []int64     `json:"skill_ids"`
	GithubID    string      `json:"github_id"`
	QiitaID     string      `json:"qiita_id"`
	XID         string      `json:"x_id"`
	CreatedAt   time.Time   `json:"created_at"`
}
