// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`

	// IANA timezone used when bucketing completions into calendar days
	// for streak computation. Empty means UTC.
	Timezone string `gorm:"size:64" json:"timezone"`

	// Timestamps
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLogin    time.Time `json:"last_login"`
	LastActivity time.Time `json:"last_activity"`

	// Relationships
	Attempts []Attempt   `gorm:"foreignKey:UserID" json:"attempts,omitempty"`
	Badges   []UserBadge `gorm:"foreignKey:UserID" json:"badges,omitempty"`
}

// UserBadge is the persisted earned set. Rows are only ever inserted:
// a badge, once earned, is never revoked even if the ledger would no
// longer satisfy its criterion.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  string    `gorm:"not null;size:64;uniqueIndex:idx_user_badge" json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (UserBadge) TableName() string {
	return "user_badges"
}
