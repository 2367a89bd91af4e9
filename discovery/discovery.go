package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/logger"
)

// NIP-69 p2p order event kind
const orderEventKind = 38383

// orderAnnouncer publishes newly created orders to nostr relays so
// takers can discover them.
type orderAnnouncer struct {
	relays    []string
	secretKey string
}

func NewOrderAnnouncer(relays []string, secretKey string) *orderAnnouncer {
	return &orderAnnouncer{
		relays:    relays,
		secretKey: secretKey,
	}
}

func (a *orderAnnouncer) ConsumeEvent(ctx context.Context, event *events.Event, globalProperties map[string]interface{}) {
	if event.Event != "escrow_order_created" {
		return
	}
	if len(a.relays) == 0 || a.secretKey == "" {
		return
	}

	dbOrder, ok := event.Properties.(*db.Order)
	if !ok {
		logger.Logger.Error().Interface("event", event).Msg("Failed to cast event properties for order created")
		return
	}

	contentBytes, err := json.Marshal(map[string]interface{}{
		"id":             dbOrder.ID,
		"amount_msat":    dbOrder.AmountMsat,
		"currency":       dbOrder.Currency,
		"payment_method": dbOrder.PaymentMethod,
		"direction":      dbOrder.Direction,
		"premium":        dbOrder.Premium,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to serialize order announcement")
		return
	}

	pubkey, err := nostr.GetPublicKey(a.secretKey)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to derive announcement pubkey")
		return
	}

	nostrEvent := nostr.Event{
		PubKey:    pubkey,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      orderEventKind,
		Tags: nostr.Tags{
			{"d", fmt.Sprintf("%d", dbOrder.ID)},
			{"s", dbOrder.Status},
		},
		Content: string(contentBytes),
	}
	if err := nostrEvent.Sign(a.secretKey); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to sign order announcement")
		return
	}

	for _, relayUrl := range a.relays {
		relay, err := nostr.RelayConnect(ctx, relayUrl)
		if err != nil {
			logger.Logger.Error().Err(err).
				Str("relay", relayUrl).
				Msg("Failed to connect to relay")
			continue
		}
		if err := relay.Publish(ctx, nostrEvent); err != nil {
			logger.Logger.Error().Err(err).
				Str("relay", relayUrl).
				Uint("order_id", dbOrder.ID).
				Msg("Failed to publish order announcement")
		}
		relay.Close()
	}

	logger.Logger.Info().
		Uint("order_id", dbOrder.ID).
		Int("relays", len(a.relays)).
		Msg("Announced order")
}
