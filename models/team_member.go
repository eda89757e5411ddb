package models

import "time"

// TeamRole is the permission level of an admin panel user
type TeamRole string

const (
	TeamRoleViewer  TeamRole = "viewer"  // read-only
	TeamRoleEditor  TeamRole = "editor"  // catalog + claim edits
	TeamRoleManager TeamRole = "manager" // partners, handles, bulk destructive ops
	TeamRoleOwner   TeamRole = "owner"   // team administration
)

var teamRoleRanks = map[TeamRole]int{
	TeamRoleViewer:  1,
	TeamRoleEditor:  2,
	TeamRoleManager: 3,
	TeamRoleOwner:   4,
}

// Rank returns the ordinal position of the role, 0 for unknown.
func (r TeamRole) Rank() int {
	return teamRoleRanks[r]
}

// AtLeast reports whether the role grants at least the permissions of other.
func (r TeamRole) AtLeast(other TeamRole) bool {
	return teamRoleRanks[r] >= teamRoleRanks[other]
}

// TeamMember maps an external admin identity to a panel role
type TeamMember struct {
	ID             string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string   `gorm:"uniqueIndex;not null" json:"external_user_id"`
	DisplayName    string   `json:"display_name"`
	Email          string   `json:"email"`
	Role           TeamRole `gorm:"not null;default:'viewer'" json:"role"`
	InvitedBy      string   `json:"invited_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
