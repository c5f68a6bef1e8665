package models

import "time"

// User roles.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// UserModel represents a platform account.
type UserModel struct {
	Base
	Username         string     `json:"username"          gorm:"uniqueIndex;not null"`
	Email            string     `json:"email"             gorm:"uniqueIndex;not null"`
	PasswordHash     string     `json:"-"                 gorm:"not null"`
	Role             string     `json:"role"              gorm:"default:user;index"`
	IsActive         bool       `json:"is_active"         gorm:"default:true"`
	LastLoginTime    *time.Time `json:"last_login_time"`
	LastLoginIP      string     `json:"last_login_ip"`
	WarnedAt         *time.Time `json:"warned_at,omitempty"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// IsModerator reports whether the account can act on the review queue.
func (u *UserModel) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
