package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/tests"
)

func createDepositingOrder(svc *tests.TestService, direction string) *db.Order {
	takerID := uint(2)
	dbOrder := db.Order{
		MakerID:    1,
		TakerID:    &takerID,
		AmountMsat: 200_000,
		Status:     constants.ORDER_STATUS_DEPOSITING,
		Direction:  direction,
	}
	svc.DB.Create(&dbOrder)

	svc.DB.Create(&db.Invoice{
		OrderID:     dbOrder.ID,
		AmountMsat:  10_000,
		Status:      constants.INVOICE_STATUS_PENDING,
		PaymentHash: "maker_bond_hash",
		Kind:        constants.INVOICE_KIND_HOLD,
		Role:        constants.INVOICE_ROLE_MAKER,
	})
	svc.DB.Create(&db.Invoice{
		OrderID:     dbOrder.ID,
		AmountMsat:  10_000,
		Status:      constants.INVOICE_STATUS_PENDING,
		PaymentHash: "taker_bond_hash",
		Kind:        constants.INVOICE_KIND_HOLD,
		Role:        constants.INVOICE_ROLE_TAKER,
	})
	if direction == constants.ORDER_DIRECTION_SELL {
		svc.DB.Create(&db.Invoice{
			OrderID:     dbOrder.ID,
			AmountMsat:  200_000,
			Status:      constants.INVOICE_STATUS_PENDING,
			PaymentHash: "full_amount_hash",
			Kind:        constants.INVOICE_KIND_FULL,
			Role:        constants.INVOICE_ROLE_MAKER,
		})
	}
	return &dbOrder
}

func TestReconcileInvoices_OpensChat(t *testing.T) {
	ctx := context.TODO()

	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := createDepositingOrder(svc, constants.ORDER_DIRECTION_BUY)

	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return([]lnclient.ListedInvoice{
			{PaymentHash: "maker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "taker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
		}, nil)
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "maker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil)
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "taker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil)

	reconciliationService := NewReconciliationService(svc.DB, svc.LNClient, svc.EventPublisher, nil, time.Second)

	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_CHAT_OPEN, storedOrder.Status)

	var acceptedCount int64
	svc.DB.Model(&db.Invoice{}).
		Where("order_id = ? AND status = ?", dbOrder.ID, constants.INVOICE_STATUS_ACCEPTED).
		Count(&acceptedCount)
	assert.Equal(t, int64(2), acceptedCount)

	// a second pass observes no change and writes nothing
	firstPassUpdatedAt := storedOrder.UpdatedAt
	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_CHAT_OPEN, storedOrder.Status)
	assert.Equal(t, firstPassUpdatedAt, storedOrder.UpdatedAt)
}

func TestReconcileInvoices_SellWaitsForFullInvoice(t *testing.T) {
	ctx := context.TODO()

	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := createDepositingOrder(svc, constants.ORDER_DIRECTION_SELL)

	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return([]lnclient.ListedInvoice{
			{PaymentHash: "maker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "taker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "full_amount_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
		}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "maker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil)
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "taker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil)

	reconciliationService := NewReconciliationService(svc.DB, svc.LNClient, svc.EventPublisher, nil, time.Second)

	// both bonds locked but the full amount is still unpaid
	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_DEPOSITING, storedOrder.Status)

	// the full invoice is paid on the next pass
	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return([]lnclient.ListedInvoice{
			{PaymentHash: "maker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "taker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "full_amount_hash", Status: lnclient.LISTED_INVOICE_STATUS_PAID},
		}, nil).
		Once()

	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_CHAT_OPEN, storedOrder.Status)
}

func TestReconcileInvoices_CanceledBondCancelsOrder(t *testing.T) {
	ctx := context.TODO()

	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := createDepositingOrder(svc, constants.ORDER_DIRECTION_BUY)

	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return([]lnclient.ListedInvoice{
			{PaymentHash: "maker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "taker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
		}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "maker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "taker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_CANCELED}, nil).
		Once()

	reconciliationService := NewReconciliationService(svc.DB, svc.LNClient, svc.EventPublisher, nil, time.Second)

	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	// one accepted bond does not outweigh the canceled one
	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_CANCELED, storedOrder.Status)

	var canceledInvoice db.Invoice
	svc.DB.First(&canceledInvoice, "payment_hash = ?", "taker_bond_hash")
	assert.Equal(t, constants.INVOICE_STATUS_CANCELED, canceledInvoice.Status)
}

func TestReconcileInvoices_ListFailureAbortsPass(t *testing.T) {
	ctx := context.TODO()

	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := createDepositingOrder(svc, constants.ORDER_DIRECTION_BUY)

	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return(nil, errors.New("connection refused")).
		Once()

	reconciliationService := NewReconciliationService(svc.DB, svc.LNClient, svc.EventPublisher, nil, time.Second)

	err = reconciliationService.ReconcileInvoices(ctx)
	require.Error(t, err)
	svc.LNClient.AssertNotCalled(t, "LookupHoldInvoice", mock.Anything, mock.Anything)

	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_DEPOSITING, storedOrder.Status)
}

func TestReconcileInvoices_LookupFailureSkipsRecord(t *testing.T) {
	ctx := context.TODO()

	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := createDepositingOrder(svc, constants.ORDER_DIRECTION_BUY)

	otherTakerID := uint(4)
	otherOrder := db.Order{
		MakerID:    3,
		TakerID:    &otherTakerID,
		AmountMsat: 100_000,
		Status:     constants.ORDER_STATUS_DEPOSITING,
		Direction:  constants.ORDER_DIRECTION_BUY,
	}
	svc.DB.Create(&otherOrder)
	svc.DB.Create(&db.Invoice{
		OrderID:     otherOrder.ID,
		AmountMsat:  5_000,
		Status:      constants.INVOICE_STATUS_PENDING,
		PaymentHash: "other_bond_hash",
		Kind:        constants.INVOICE_KIND_HOLD,
		Role:        constants.INVOICE_ROLE_MAKER,
	})

	svc.LNClient.EXPECT().
		ListInvoices(mock.Anything).
		Return([]lnclient.ListedInvoice{
			{PaymentHash: "maker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "taker_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
			{PaymentHash: "other_bond_hash", Status: lnclient.LISTED_INVOICE_STATUS_UNPAID},
		}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "maker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "taker_bond_hash").
		Return(&lnclient.HoldInvoiceState{State: lnclient.HOLD_INVOICE_STATE_ACCEPTED}, nil).
		Once()
	svc.LNClient.EXPECT().
		LookupHoldInvoice(mock.Anything, "other_bond_hash").
		Return(nil, errors.New("lookup timed out")).
		Once()

	reconciliationService := NewReconciliationService(svc.DB, svc.LNClient, svc.EventPublisher, nil, time.Second)

	// the failing record does not block the healthy order
	err = reconciliationService.ReconcileInvoices(ctx)
	require.NoError(t, err)

	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_CHAT_OPEN, storedOrder.Status)

	var otherStoredOrder db.Order
	svc.DB.First(&otherStoredOrder, otherOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_DEPOSITING, otherStoredOrder.Status)
}
