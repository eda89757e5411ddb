// workers/points_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"loyalty-admin-system/models"
	"loyalty-admin-system/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PointsSyncClient pulls point balances from the ledger service and persists
// them into the local points_mirrors table.
type PointsSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewPointsSyncClient(db *gorm.DB) *PointsSyncClient {
	baseURL := os.Getenv("LEDGER_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("LEDGER_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("LOYALTY_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("LOYALTY_SERVICE_TOKEN environment variable is required for points sync")
	}

	return &PointsSyncClient{
		BaseURL:    baseURL,
		Token:      token,
		DB:         db,
		HTTPClient: utils.HTTPClient,
	}
}

type ledgerBalance struct {
	ExternalUserID string    `json:"external_user_id"`
	Balance        int64     `json:"balance"`
	TotalEarned    int64     `json:"total_earned"`
	TotalSpent     int64     `json:"total_spent"`
	SyncedAt       time.Time `json:"synced_at"`
}

func (c *PointsSyncClient) GetChangedBalances(ctx context.Context, since time.Time) ([]models.PointsMirror, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/balances", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ledger service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ledger service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Balances []ledgerBalance `json:"balances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode ledger service response: %w", err)
	}

	mirrors := make([]models.PointsMirror, 0, len(response.Balances))
	for _, b := range response.Balances {
		mirrors = append(mirrors, models.PointsMirror{
			ExternalUserID: b.ExternalUserID,
			Balance:        b.Balance,
			TotalEarned:    b.TotalEarned,
			TotalSpent:     b.TotalSpent,
			LedgerSyncedAt: b.SyncedAt,
		})
	}
	return mirrors, nil
}

// PollBalances polls the ledger on an interval and upserts balances.
func PollBalances(ctx context.Context, client *PointsSyncClient, pollInterval time.Duration) {
	log.Println("Starting points balance polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Points polling stopped.")
			return
		case <-ticker.C:
			cutoff := time.Now().UTC()
			mirrors, err := client.GetChangedBalances(ctx, lastSyncTime)
			if err != nil {
				log.Printf("[PointsSync] fetch failed: %v", err)
				continue
			}
			if len(mirrors) == 0 {
				lastSyncTime = cutoff
				continue
			}

			if err := client.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "external_user_id"}},
				UpdateAll: true,
			}).Create(&mirrors).Error; err != nil {
				log.Printf("[PointsSync] upsert failed: %v", err)
				continue
			}

			log.Printf("[PointsSync] upserted %d balances", len(mirrors))
			lastSyncTime = cutoff
		}
	}
}
