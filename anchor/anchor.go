package anchor

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/logger"
)

// commitmentConsumer anchors a digest of each completed trade with the
// external commitment-anchoring service. The core only supplies the
// input data; the anchoring service owns publication.
type commitmentConsumer struct {
	serviceUrl string
	client     *http.Client
}

func NewCommitmentConsumer(serviceUrl string) *commitmentConsumer {
	return &commitmentConsumer{
		serviceUrl: strings.TrimSuffix(serviceUrl, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *commitmentConsumer) ConsumeEvent(ctx context.Context, event *events.Event, globalProperties map[string]interface{}) {
	if event.Event != "escrow_trade_completed" {
		return
	}
	if c.serviceUrl == "" {
		return
	}

	dbOrder, ok := event.Properties.(*db.Order)
	if !ok {
		logger.Logger.Error().Interface("event", event).Msg("Failed to cast event properties for trade completed")
		return
	}

	commitment := CommitmentHash(dbOrder)

	payloadBytes, err := json.Marshal(map[string]interface{}{
		"order_id":   dbOrder.ID,
		"commitment": commitment,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to serialize commitment payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceUrl+"/api/commitments", bytes.NewReader(payloadBytes))
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to build commitment request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint("order_id", dbOrder.ID).
			Msg("Failed to anchor trade commitment")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Logger.Error().
			Uint("order_id", dbOrder.ID).
			Int("status", resp.StatusCode).
			Msg("Anchoring service rejected commitment")
		return
	}

	logger.Logger.Info().
		Uint("order_id", dbOrder.ID).
		Str("commitment", commitment).
		Msg("Anchored trade commitment")
}

// CommitmentHash derives the stable digest anchored for an order. Pure;
// the same order state always hashes to the same commitment.
func CommitmentHash(order *db.Order) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|", order.ID, order.MakerID)
	if order.TakerID != nil {
		fmt.Fprintf(h, "%d", *order.TakerID)
	}
	fmt.Fprintf(h, "|%s|%s|%d|%s|%s",
		order.Status,
		order.Direction,
		order.AmountMsat,
		order.Currency,
		order.CreatedAt.UTC().Format(time.RFC3339),
	)
	return hex.EncodeToString(h.Sum(nil))
}
