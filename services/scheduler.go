// services/scheduler.go
package services

import (
	"log"
	"time"

	"loyalty-admin-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweep runs the claim expiry sweep: approved claims whose
// fulfillment window lapsed are marked expired so they stop cluttering the
// fulfillment queue.
func (s *ClaimService) StartExpirySweep() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: expire lapsed approved claims
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			var claims []models.Claim
			now := time.Now()
			err := s.DB.Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?",
				models.ClaimStatusApproved, now).
				Find(&claims).Error
			if err != nil {
				log.Printf("[Sweep] DB error: %v", err)
				return
			}

			for _, cl := range claims {
				cl.Status = models.ClaimStatusExpired
				cl.ExpiresAt = nil
				if err := s.DB.Save(&cl).Error; err != nil {
					log.Printf("[Sweep] Failed to expire claim %s: %v", cl.ID, err)
				} else {
					log.Printf("✅ Auto-expired claim: %s", cl.ID)
				}
			}
		}),
	)
}
