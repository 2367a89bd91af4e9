package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
)

type ordersService struct {
	db             *gorm.DB
	eventPublisher events.EventPublisher
}

type OrdersService interface {
	CreateOrder(ctx context.Context, request *CreateOrderRequest, lnClient lnclient.LNClient) (*db.Order, []db.Invoice, error)
	TakeOrder(ctx context.Context, orderID uint, takerID uint, lnClient lnclient.LNClient) (*db.Order, error)
	SettleOrder(ctx context.Context, orderID uint, lnClient lnclient.LNClient) (*db.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*db.Order, []db.Invoice, error)
	ListOrders(ctx context.Context, limit uint64, offset uint64) ([]db.Order, uint64, error)
}

type CreateOrderRequest struct {
	MakerID       uint
	TradeDetails  map[string]interface{}
	AmountMsat    uint64
	Currency      string
	PaymentMethod string
	Direction     string
	Premium       float64
}

func NewOrdersService(db *gorm.DB, eventPublisher events.EventPublisher) *ordersService {
	return &ordersService{
		db:             db,
		eventPublisher: eventPublisher,
	}
}

func (svc *ordersService) CreateOrder(ctx context.Context, request *CreateOrderRequest, lnClient lnclient.LNClient) (*db.Order, []db.Invoice, error) {
	if request.MakerID == 0 {
		return nil, nil, NewValidationError("maker is required")
	}
	if request.AmountMsat == 0 {
		return nil, nil, NewValidationError("order amount must be greater than zero")
	}
	if request.Direction != constants.ORDER_DIRECTION_BUY && request.Direction != constants.ORDER_DIRECTION_SELL {
		return nil, nil, NewValidationError(fmt.Sprintf("unknown trade direction %q", request.Direction))
	}

	var tradeDetailsBytes []byte
	if request.TradeDetails != nil {
		var err error
		tradeDetailsBytes, err = json.Marshal(request.TradeDetails)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to serialize trade details")
			return nil, nil, err
		}
	}

	var dbOrder db.Order
	var dbInvoices []db.Invoice
	err := svc.db.Transaction(func(tx *gorm.DB) error {
		dbOrder = db.Order{
			MakerID:       request.MakerID,
			TradeDetails:  datatypes.JSON(tradeDetailsBytes),
			AmountMsat:    request.AmountMsat,
			Currency:      request.Currency,
			PaymentMethod: request.PaymentMethod,
			Status:        constants.ORDER_STATUS_PENDING,
			Direction:     request.Direction,
			Premium:       request.Premium,
		}
		if err := tx.Create(&dbOrder).Error; err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create DB order")
			return err
		}

		bondInvoice, err := svc.createBondInvoice(ctx, tx, &dbOrder, constants.INVOICE_ROLE_MAKER, lnClient)
		if err != nil {
			return err
		}
		dbInvoices = append(dbInvoices, *bondInvoice)

		// the side paying the full trade value locks it up front
		if dbOrder.Direction == constants.ORDER_DIRECTION_SELL {
			fullInvoice, err := svc.createFullInvoice(ctx, tx, &dbOrder, lnClient)
			if err != nil {
				return err
			}
			dbInvoices = append(dbInvoices, *fullInvoice)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Logger.Info().
		Uint("order_id", dbOrder.ID).
		Uint64("amount_msat", dbOrder.AmountMsat).
		Str("direction", dbOrder.Direction).
		Msg("Created order with maker invoices")

	svc.eventPublisher.Publish(&events.Event{
		Event:      "escrow_order_created",
		Properties: &dbOrder,
	})

	return &dbOrder, dbInvoices, nil
}

func (svc *ordersService) TakeOrder(ctx context.Context, orderID uint, takerID uint, lnClient lnclient.LNClient) (*db.Order, error) {
	if takerID == 0 {
		return nil, NewValidationError("taker is required")
	}

	var dbOrder db.Order
	var taken bool
	err := svc.db.Transaction(func(tx *gorm.DB) error {
		result := db.RowLock(tx).
			Limit(1).
			Find(&dbOrder, &db.Order{ID: orderID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewValidationError("order not found")
		}

		// taking an order you already took is a no-op
		if dbOrder.Status == constants.ORDER_STATUS_DEPOSITING &&
			dbOrder.TakerID != nil && *dbOrder.TakerID == takerID {
			return nil
		}

		if dbOrder.Status != constants.ORDER_STATUS_PENDING {
			return NewValidationError(fmt.Sprintf("order in status %s cannot be taken", dbOrder.Status))
		}
		if dbOrder.MakerID == takerID {
			return NewValidationError("maker cannot take their own order")
		}

		if _, err := svc.createBondInvoice(ctx, tx, &dbOrder, constants.INVOICE_ROLE_TAKER, lnClient); err != nil {
			return err
		}

		// taker is set exactly once, together with the status flip
		result = tx.Model(&db.Order{}).
			Where("id = ? AND status = ? AND taker_id IS NULL", dbOrder.ID, constants.ORDER_STATUS_PENDING).
			Updates(map[string]interface{}{
				"taker_id": takerID,
				"status":   constants.ORDER_STATUS_DEPOSITING,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewConsistencyError(fmt.Sprintf("order %d was taken concurrently", dbOrder.ID))
		}

		dbOrder.TakerID = &takerID
		dbOrder.Status = constants.ORDER_STATUS_DEPOSITING
		taken = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if taken {
		logger.Logger.Info().
			Uint("order_id", dbOrder.ID).
			Uint("taker_id", takerID).
			Msg("Order taken, awaiting deposits")

		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_order_taken",
			Properties: &dbOrder,
		})
	}

	return &dbOrder, nil
}

// SettleOrder captures every accepted hold invoice of the order and
// completes the trade. Fail-closed: the order status flips only after
// all settlement calls succeeded; any failure rolls the whole unit
// back with no row changed.
func (svc *ordersService) SettleOrder(ctx context.Context, orderID uint, lnClient lnclient.LNClient) (*db.Order, error) {
	var dbOrder db.Order
	var settled bool
	err := svc.db.Transaction(func(tx *gorm.DB) error {
		result := db.RowLock(tx).
			Limit(1).
			Find(&dbOrder, &db.Order{ID: orderID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NewValidationError("order not found")
		}

		// snapshot read; not re-checked mid-operation
		var acceptedInvoices []db.Invoice
		err := tx.Where("order_id = ? AND kind = ? AND status = ?",
			dbOrder.ID, constants.INVOICE_KIND_HOLD, constants.INVOICE_STATUS_ACCEPTED).
			Find(&acceptedInvoices).Error
		if err != nil {
			return err
		}

		if len(acceptedInvoices) == 0 {
			var settledCount int64
			tx.Model(&db.Invoice{}).
				Where("order_id = ? AND kind = ? AND status = ?",
					dbOrder.ID, constants.INVOICE_KIND_HOLD, constants.INVOICE_STATUS_SETTLED).
				Count(&settledCount)

			// already fully settled: no further node calls
			if dbOrder.Status == constants.ORDER_STATUS_TRADE_COMPLETE && settledCount > 0 {
				logger.Logger.Debug().
					Uint("order_id", dbOrder.ID).
					Msg("Order already settled")
				return nil
			}
			return NewConsistencyError(fmt.Sprintf("order %d has no accepted hold invoices to settle", dbOrder.ID))
		}

		if !CanTransition(dbOrder.Status, constants.ORDER_STATUS_TRADE_COMPLETE) {
			return NewValidationError(fmt.Sprintf("order in status %s cannot be settled", dbOrder.Status))
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for _, invoice := range acceptedInvoices {
			paymentHash := invoice.PaymentHash
			group.Go(func() error {
				return lnClient.SettleHoldInvoice(groupCtx, paymentHash)
			})
		}
		if err := group.Wait(); err != nil {
			logger.Logger.Error().Err(err).
				Uint("order_id", dbOrder.ID).
				Msg("Failed to settle hold invoices, aborting settlement")
			return err
		}

		for _, invoice := range acceptedInvoices {
			result := tx.Model(&db.Invoice{}).
				Where("id = ? AND status = ?", invoice.ID, constants.INVOICE_STATUS_ACCEPTED).
				Update("status", constants.INVOICE_STATUS_SETTLED)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return NewConsistencyError(fmt.Sprintf("invoice %d changed concurrently during settlement", invoice.ID))
			}
		}

		if _, err := TransitionOrder(tx, &dbOrder, constants.ORDER_STATUS_TRADE_COMPLETE); err != nil {
			return err
		}

		// a payout the counterparty already received closes with the trade
		err = tx.Model(&db.Payout{}).
			Where("order_id = ? AND status = ?", dbOrder.ID, constants.PAYOUT_STATUS_FIAT_RECEIVED).
			Update("status", constants.PAYOUT_STATUS_COMPLETE).Error
		if err != nil {
			return err
		}

		settled = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if settled {
		logger.Logger.Info().
			Uint("order_id", dbOrder.ID).
			Msg("Settled all hold invoices, trade complete")

		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_trade_completed",
			Properties: &dbOrder,
		})
		// the access list drops both parties once the trade is closed
		svc.eventPublisher.Publish(&events.Event{
			Event:      "escrow_access_list_update",
			Properties: &dbOrder,
		})
	}

	return &dbOrder, nil
}

func (svc *ordersService) GetOrder(ctx context.Context, orderID uint) (*db.Order, []db.Invoice, error) {
	var dbOrder db.Order
	result := svc.db.Limit(1).Find(&dbOrder, &db.Order{ID: orderID})
	if result.Error != nil {
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil, NewValidationError("order not found")
	}

	var dbInvoices []db.Invoice
	err := svc.db.Where("order_id = ?", orderID).Order("created_at asc").Find(&dbInvoices).Error
	if err != nil {
		return nil, nil, err
	}

	return &dbOrder, dbInvoices, nil
}

func (svc *ordersService) ListOrders(ctx context.Context, limit uint64, offset uint64) ([]db.Order, uint64, error) {
	var totalCount int64
	result := svc.db.Model(&db.Order{}).Count(&totalCount)
	if result.Error != nil {
		logger.Logger.Error().Err(result.Error).Msg("Failed to count DB orders")
		return nil, 0, result.Error
	}

	tx := svc.db.Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(int(limit))
	}
	if offset > 0 {
		tx = tx.Offset(int(offset))
	}

	var dbOrders []db.Order
	result = tx.Find(&dbOrders)
	if result.Error != nil {
		logger.Logger.Error().Err(result.Error).Msg("Failed to list DB orders")
		return nil, 0, result.Error
	}

	return dbOrders, uint64(totalCount), nil
}

func (svc *ordersService) createBondInvoice(ctx context.Context, tx *gorm.DB, dbOrder *db.Order, role string, lnClient lnclient.LNClient) (*db.Invoice, error) {
	bondMsat := BondAmountMsat(dbOrder.AmountMsat)
	label := fmt.Sprintf("escrow-%d-%s-bond-%s", dbOrder.ID, role, uuid.NewString())
	description := fmt.Sprintf("%s bond for order %d", role, dbOrder.ID)

	lnInvoice, err := lnClient.CreateHoldInvoice(ctx, bondMsat, label, description)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint("order_id", dbOrder.ID).
			Str("role", role).
			Msg("Failed to create bond hold invoice")
		return nil, err
	}

	return svc.createDBInvoice(tx, dbOrder, lnInvoice, bondMsat, description, constants.INVOICE_KIND_HOLD, role)
}

func (svc *ordersService) createFullInvoice(ctx context.Context, tx *gorm.DB, dbOrder *db.Order, lnClient lnclient.LNClient) (*db.Invoice, error) {
	label := fmt.Sprintf("escrow-%d-full-%s", dbOrder.ID, uuid.NewString())
	description := fmt.Sprintf("full trade amount for order %d", dbOrder.ID)

	lnInvoice, err := lnClient.CreateInvoice(ctx, dbOrder.AmountMsat, label, description)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint("order_id", dbOrder.ID).
			Msg("Failed to create full invoice")
		return nil, err
	}

	return svc.createDBInvoice(tx, dbOrder, lnInvoice, dbOrder.AmountMsat, description, constants.INVOICE_KIND_FULL, constants.INVOICE_ROLE_MAKER)
}

func (svc *ordersService) createDBInvoice(tx *gorm.DB, dbOrder *db.Order, lnInvoice *lnclient.Invoice, amountMsat uint64, description string, kind string, role string) (*db.Invoice, error) {
	var expiresAt *time.Time
	if lnInvoice.ExpiresAt != nil {
		expiresAtValue := *lnInvoice.ExpiresAt
		expiresAt = &expiresAtValue
	}

	dbInvoice := db.Invoice{
		OrderID:        dbOrder.ID,
		PaymentRequest: lnInvoice.PaymentRequest,
		AmountMsat:     amountMsat,
		Status:         constants.INVOICE_STATUS_PENDING,
		Description:    description,
		PaymentHash:    lnInvoice.PaymentHash,
		Kind:           kind,
		Role:           role,
		ExpiresAt:      expiresAt,
	}
	if err := tx.Create(&dbInvoice).Error; err != nil {
		logger.Logger.Error().Err(err).
			Uint("order_id", dbOrder.ID).
			Str("payment_hash", lnInvoice.PaymentHash).
			Msg("Failed to create DB invoice")
		return nil, err
	}
	return &dbInvoice, nil
}
