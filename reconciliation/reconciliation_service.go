package reconciliation

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/chat"
	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/db/queries"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
	"github.com/civkit/civkit-api-sub000/orders"
)

type reconciliationService struct {
	db             *gorm.DB
	lnClient       lnclient.LNClient
	eventPublisher events.EventPublisher
	chatClient     chat.Client
	interval       time.Duration
}

type ReconciliationService interface {
	Start(ctx context.Context)
	ReconcileInvoices(ctx context.Context) error
}

func NewReconciliationService(db *gorm.DB, lnClient lnclient.LNClient, eventPublisher events.EventPublisher, chatClient chat.Client, interval time.Duration) *reconciliationService {
	return &reconciliationService{
		db:             db,
		lnClient:       lnClient,
		eventPublisher: eventPublisher,
		chatClient:     chatClient,
		interval:       interval,
	}
}

// Start runs reconciliation passes at the configured interval until the
// context is canceled. Passes run independently of request handling.
func (svc *reconciliationService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(svc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.ReconcileInvoices(ctx); err != nil {
					logger.Logger.Error().Err(err).Msg("Reconciliation pass failed, retrying next tick")
				}
			}
		}
	}()
}

type invoiceUpdate struct {
	invoiceID  uint
	kind       string
	fromStatus string
	toStatus   string
}

// ReconcileInvoices performs one pass: pull the node's invoice list,
// compare it against stored invoices, and advance per-order state where
// the ledger moved. A failure fetching the list aborts the pass; a
// failure on one order does not block unrelated orders.
func (svc *reconciliationService) ReconcileInvoices(ctx context.Context) error {
	listedInvoices, err := svc.lnClient.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch node invoice list: %w", err)
	}

	ledgerStatuses := make(map[string]string, len(listedInvoices))
	for _, listedInvoice := range listedInvoices {
		ledgerStatuses[listedInvoice.PaymentHash] = listedInvoice.Status
	}

	var dbInvoices []db.Invoice
	err = svc.db.Where("status NOT IN ?", []string{
		constants.INVOICE_STATUS_SETTLED,
		constants.INVOICE_STATUS_CANCELED,
	}).Find(&dbInvoices).Error
	if err != nil {
		return fmt.Errorf("failed to load stored invoices: %w", err)
	}

	updatesByOrder := map[uint][]invoiceUpdate{}
	for _, dbInvoice := range dbInvoices {
		ledgerStatus, known := ledgerStatuses[dbInvoice.PaymentHash]
		if !known {
			continue
		}

		newStatus, err := svc.observeInvoice(ctx, &dbInvoice, ledgerStatus)
		if err != nil {
			// one bad record must not block the rest of the pass
			logger.Logger.Error().Err(err).
				Str("payment_hash", dbInvoice.PaymentHash).
				Msg("Failed to observe invoice state, skipping")
			continue
		}

		if newStatus != dbInvoice.Status {
			updatesByOrder[dbInvoice.OrderID] = append(updatesByOrder[dbInvoice.OrderID], invoiceUpdate{
				invoiceID:  dbInvoice.ID,
				kind:       dbInvoice.Kind,
				fromStatus: dbInvoice.Status,
				toStatus:   newStatus,
			})
		}
	}

	for orderID, updates := range updatesByOrder {
		if err := svc.reconcileOrder(ctx, orderID, updates); err != nil {
			logger.Logger.Error().Err(err).
				Uint("order_id", orderID).
				Msg("Failed to reconcile order, skipping")
		}
	}

	return nil
}

// observeInvoice maps the ledger's view of one invoice onto the stored
// status enum. Hold invoices get the fine-grained HTLC state.
func (svc *reconciliationService) observeInvoice(ctx context.Context, dbInvoice *db.Invoice, ledgerStatus string) (string, error) {
	if dbInvoice.Kind == constants.INVOICE_KIND_HOLD {
		holdState, err := svc.lnClient.LookupHoldInvoice(ctx, dbInvoice.PaymentHash)
		if err != nil {
			return "", err
		}
		switch holdState.State {
		case lnclient.HOLD_INVOICE_STATE_ACCEPTED, lnclient.HOLD_INVOICE_STATE_SETTLED:
			return constants.INVOICE_STATUS_ACCEPTED, nil
		case lnclient.HOLD_INVOICE_STATE_CANCELED:
			return constants.INVOICE_STATUS_CANCELED, nil
		}
		return dbInvoice.Status, nil
	}

	switch ledgerStatus {
	case lnclient.LISTED_INVOICE_STATUS_PAID:
		return constants.INVOICE_STATUS_PAID, nil
	case lnclient.LISTED_INVOICE_STATUS_EXPIRED:
		return constants.INVOICE_STATUS_CANCELED, nil
	}
	return dbInvoice.Status, nil
}

// reconcileOrder applies one order's observed invoice statuses and its
// resulting status flip in a single transaction, locked against a
// concurrent settlement of the same order.
func (svc *reconciliationService) reconcileOrder(ctx context.Context, orderID uint, updates []invoiceUpdate) error {
	var dbOrder db.Order
	var chatOpened, canceled bool
	err := svc.db.Transaction(func(tx *gorm.DB) error {
		result := db.RowLock(tx).
			Limit(1).
			Find(&dbOrder, &db.Order{ID: orderID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %d not found for stored invoice", orderID)
		}

		holdCanceled := false
		for _, update := range updates {
			result := tx.Model(&db.Invoice{}).
				Where("id = ? AND status = ?", update.invoiceID, update.fromStatus).
				Update("status", update.toStatus)
			if result.Error != nil {
				return result.Error
			}
			// zero rows means the invoice moved concurrently; the next
			// pass re-observes it
			if result.RowsAffected == 0 {
				continue
			}
			if update.kind == constants.INVOICE_KIND_HOLD && update.toStatus == constants.INVOICE_STATUS_CANCELED {
				holdCanceled = true
			}
		}

		// a canceled bond voids a deposit that never completed; later
		// stages hold committed funds and are settled by operators
		if holdCanceled && orders.CanTransition(dbOrder.Status, constants.ORDER_STATUS_CANCELED) &&
			dbOrder.Status != constants.ORDER_STATUS_CANCELED {
			changed, err := orders.TransitionOrder(tx, &dbOrder, constants.ORDER_STATUS_CANCELED)
			if err != nil {
				return err
			}
			canceled = changed
			return nil
		}

		if dbOrder.Status == constants.ORDER_STATUS_DEPOSITING && queries.ChatOpenInvariantMet(tx, &dbOrder) {
			changed, err := orders.TransitionOrder(tx, &dbOrder, constants.ORDER_STATUS_CHAT_OPEN)
			if err != nil {
				return err
			}
			chatOpened = changed
		}

		return nil
	})
	if err != nil {
		return err
	}

	if canceled {
		logger.Logger.Info().
			Uint("order_id", dbOrder.ID).
			Msg("Canceled order after hold invoice cancellation")
		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_order_canceled",
			Properties: &dbOrder,
		})
	}

	if chatOpened {
		logger.Logger.Info().
			Uint("order_id", dbOrder.ID).
			Msg("All deposits locked, chat open")
		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_chat_open",
			Properties: &dbOrder,
		})
		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_access_list_update",
			Properties: &dbOrder,
		})
		svc.openChatRoom(ctx, dbOrder.ID)
	}

	return nil
}

func (svc *reconciliationService) openChatRoom(ctx context.Context, orderID uint) {
	if svc.chatClient == nil {
		return
	}
	// best effort; the status gate is the source of truth and the room
	// can be fetched again on demand
	room, err := svc.chatClient.OpenRoom(ctx, orderID)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint("order_id", orderID).
			Msg("Failed to open chat room")
		return
	}
	logger.Logger.Info().
		Uint("order_id", orderID).
		Str("maker_url", room.MakerUrl).
		Str("taker_url", room.TakerUrl).
		Msg("Chat room opened")
}
