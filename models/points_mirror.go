package models

import "time"

// PointsMirror is a local copy of a member's point balance from the points
// ledger service. Mirrored (not computed here) so the claim review screens
// can show balances without a cross-service call per row.
type PointsMirror struct {
	ExternalUserID string    `gorm:"primaryKey" json:"external_user_id"`
	Balance        int64     `json:"balance"`
	TotalEarned    int64     `json:"total_earned"`
	TotalSpent     int64     `json:"total_spent"`
	LedgerSyncedAt time.Time `json:"ledger_synced_at"` // upstream timestamp of the snapshot

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
