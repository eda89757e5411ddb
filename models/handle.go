package models

import "time"

// HandleStatus governs what a handle record means
type HandleStatus string

const (
	HandleStatusClaimed  HandleStatus = "claimed"  // owned by a member
	HandleStatusReserved HandleStatus = "reserved" // held back by admins (brands, staff names)
	HandleStatusBlocked  HandleStatus = "blocked"  // never assignable (abuse, impersonation)
)

// Handle is one governed username. Canonical is the slugified, case-folded
// form that uniqueness is enforced on; Display preserves the member's casing.
type Handle struct {
	ID             string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Canonical      string       `gorm:"uniqueIndex;not null" json:"canonical"`
	Display        string       `gorm:"not null" json:"display"`
	Status         HandleStatus `gorm:"not null;default:'claimed';index" json:"status"`
	ExternalUserID string       `gorm:"index" json:"external_user_id,omitempty"` // empty for reserved/blocked
	Reason         string       `gorm:"type:text" json:"reason,omitempty"`       // why reserved/blocked

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
