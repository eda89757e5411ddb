// workers/member_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"loyalty-admin-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MirroredMemberProfile matches the JSON response from the profile service.
type MirroredMemberProfile struct {
	ExternalID        string    `json:"external_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	AccountStatus     string    `json:"account_status"`
	StatusTier        string    `json:"status_tier"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GetProfileChangesResponse is the top-level structure of the profile service
// response.
type GetProfileChangesResponse struct {
	Profiles []MirroredMemberProfile `json:"profiles"`
}

// MemberSyncWorker mirrors member profiles into the local member_mirrors
// table on an interval, so claim and handle screens can join against
// usernames without a cross-service call per row.
type MemberSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client
}

func NewMemberSyncWorker(db *gorm.DB, profileServiceBaseURL, endpointPath, serviceToken string) *MemberSyncWorker {
	return &MemberSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      profileServiceBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Start runs the sync loop until the context is cancelled. The first sync
// fires immediately; failures are logged and retried on the next tick.
func (w *MemberSyncWorker) Start(ctx context.Context) {
	lastSync := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	sync := func() {
		cutoff := time.Now().UTC()
		if err := w.syncOnce(ctx, lastSync); err != nil {
			log.Printf("[MemberSync] sync failed: %v", err)
			return
		}
		lastSync = cutoff
	}

	sync()
	for {
		select {
		case <-ctx.Done():
			log.Println("Member sync worker stopped.")
			return
		case <-ticker.C:
			sync()
		}
	}
}

func (w *MemberSyncWorker) syncOnce(ctx context.Context, since time.Time) error {
	profiles, err := w.fetchChangedProfiles(ctx, since)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return nil
	}

	mirrors := make([]models.MemberMirror, 0, len(profiles))
	for _, p := range profiles {
		mirrors = append(mirrors, models.MemberMirror{
			ExternalUserID:    p.ExternalID,
			Username:          p.Username,
			Email:             p.Email,
			ProfilePictureURL: p.ProfilePictureURL,
			AccountStatus:     p.AccountStatus,
			StatusTier:        models.StatusTier(p.StatusTier),
			ProfileUpdatedAt:  p.UpdatedAt,
		})
	}

	if err := w.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}},
		UpdateAll: true,
	}).Create(&mirrors).Error; err != nil {
		return fmt.Errorf("failed to upsert member mirrors: %w", err)
	}

	log.Printf("[MemberSync] upserted %d member profiles", len(mirrors))
	return nil
}

func (w *MemberSyncWorker) fetchChangedProfiles(ctx context.Context, since time.Time) ([]MirroredMemberProfile, error) {
	u, err := url.Parse(fmt.Sprintf("%s%s", w.baseURL, w.endpointPath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile service URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response GetProfileChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode profile service response: %w", err)
	}
	return response.Profiles, nil
}
