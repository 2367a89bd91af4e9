package payouts

import (
	"context"
	"fmt"
	"strings"
	"time"

	decodepay "github.com/nbd-wtf/ln-decodepay"
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
)

type payoutsService struct {
	db             *gorm.DB
	eventPublisher events.EventPublisher
}

type PayoutsService interface {
	SubmitPayout(ctx context.Context, orderID uint, paymentRequest string) (*db.Payout, error)
	HandleFiatReceived(ctx context.Context, orderID uint, lnClient lnclient.LNClient) (*db.Payout, error)
}

func NewPayoutsService(db *gorm.DB, eventPublisher events.EventPublisher) *payoutsService {
	return &payoutsService{
		db:             db,
		eventPublisher: eventPublisher,
	}
}

// SubmitPayout records the payee's invoice for an order. The invoice is
// decoded for its amount and must not be expired; it is paid later,
// when the fiat-received signal arrives.
func (svc *payoutsService) SubmitPayout(ctx context.Context, orderID uint, paymentRequest string) (*db.Payout, error) {
	paymentRequest = strings.ToLower(paymentRequest)
	bolt11, err := decodepay.Decodepay(paymentRequest)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("bolt11", paymentRequest).
			Msg("Failed to decode bolt11 invoice")
		return nil, NewValidationError(fmt.Sprintf("invalid payout invoice: %v", err))
	}

	expiresAt := time.Unix(int64(bolt11.CreatedAt), 0).Add(time.Duration(bolt11.Expiry) * time.Second)
	if time.Now().After(expiresAt) {
		logger.Logger.Error().
			Uint("order_id", orderID).
			Time("expires_at", expiresAt).
			Msg("Rejecting expired payout invoice")
		return nil, NewValidationError("payout invoice is expired")
	}

	var dbPayout db.Payout
	err = svc.db.Transaction(func(tx *gorm.DB) error {
		var dbOrder db.Order
		result := tx.Limit(1).Find(&dbOrder, &db.Order{ID: orderID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewValidationError("order not found")
		}
		if dbOrder.Status == constants.ORDER_STATUS_CANCELED {
			return NewValidationError("order is canceled")
		}

		var existingCount int64
		tx.Model(&db.Payout{}).
			Where("order_id = ? AND status = ?", orderID, constants.PAYOUT_STATUS_PENDING).
			Count(&existingCount)
		if existingCount > 0 {
			return NewValidationError(fmt.Sprintf("order %d already has a pending payout", orderID))
		}

		dbPayout = db.Payout{
			OrderID:        orderID,
			PaymentRequest: paymentRequest,
			AmountMsat:     uint64(bolt11.MSatoshi),
			Status:         constants.PAYOUT_STATUS_PENDING,
		}
		return tx.Create(&dbPayout).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Uint("order_id", orderID).
		Uint("payout_id", dbPayout.ID).
		Uint64("amount_msat", dbPayout.AmountMsat).
		Msg("Recorded pending payout")

	return &dbPayout, nil
}

// HandleFiatReceived pays the order's pending payout. The node call is
// not idempotent; on any failure the payout stays pending so the signal
// can be handled again.
func (svc *payoutsService) HandleFiatReceived(ctx context.Context, orderID uint, lnClient lnclient.LNClient) (*db.Payout, error) {
	var dbPayout db.Payout
	err := svc.db.Transaction(func(tx *gorm.DB) error {
		result := db.RowLock(tx).
			Limit(1).
			Find(&dbPayout, &db.Payout{
				OrderID: orderID,
				Status:  constants.PAYOUT_STATUS_PENDING,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewConsistencyError(fmt.Sprintf("no pending payout for order %d", orderID))
		}

		response, err := lnClient.PayInvoice(ctx, dbPayout.PaymentRequest)
		if err != nil {
			logger.Logger.Error().Err(err).
				Uint("order_id", orderID).
				Uint("payout_id", dbPayout.ID).
				Msg("Failed to pay payout invoice")
			return err
		}
		if response.Status != lnclient.PAYMENT_STATUS_COMPLETE {
			return NewPaymentFailedError(fmt.Sprintf("payout payment for order %d did not complete", orderID))
		}

		result = tx.Model(&db.Payout{}).
			Where("id = ? AND status = ?", dbPayout.ID, constants.PAYOUT_STATUS_PENDING).
			Update("status", constants.PAYOUT_STATUS_FIAT_RECEIVED)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewConsistencyError(fmt.Sprintf("payout %d changed concurrently", dbPayout.ID))
		}

		dbPayout.Status = constants.PAYOUT_STATUS_FIAT_RECEIVED
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Uint("order_id", orderID).
		Uint("payout_id", dbPayout.ID).
		Msg("Paid payout invoice")

	svc.eventPublisher.Publish(&events.Event{
		Event:      "escrow_payout_paid",
		Properties: &dbPayout,
	})

	return &dbPayout, nil
}
