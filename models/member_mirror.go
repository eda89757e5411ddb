package models

import "time"

// MemberMirror is a local read-only copy of a member profile from the
// platform's profile service, kept fresh by the member sync worker. Claim
// screens join against it so admins see usernames instead of raw IDs.
type MemberMirror struct {
	ExternalUserID    string     `gorm:"primaryKey" json:"external_user_id"`
	Username          string     `gorm:"index" json:"username"`
	Email             string     `json:"email"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	AccountStatus     string     `json:"account_status"`
	StatusTier        StatusTier `json:"status_tier"`
	ProfileUpdatedAt  time.Time  `json:"profile_updated_at"` // upstream timestamp, drives incremental sync

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
