package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/tests"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(constants.ORDER_STATUS_PENDING, constants.ORDER_STATUS_DEPOSITING))
	assert.True(t, CanTransition(constants.ORDER_STATUS_PENDING, constants.ORDER_STATUS_CANCELED))
	assert.True(t, CanTransition(constants.ORDER_STATUS_DEPOSITING, constants.ORDER_STATUS_CHAT_OPEN))
	assert.True(t, CanTransition(constants.ORDER_STATUS_DEPOSITING, constants.ORDER_STATUS_CANCELED))
	assert.True(t, CanTransition(constants.ORDER_STATUS_CHAT_OPEN, constants.ORDER_STATUS_TRADE_COMPLETE))

	// no skipping stages and no moving backwards
	assert.False(t, CanTransition(constants.ORDER_STATUS_PENDING, constants.ORDER_STATUS_CHAT_OPEN))
	assert.False(t, CanTransition(constants.ORDER_STATUS_PENDING, constants.ORDER_STATUS_TRADE_COMPLETE))
	assert.False(t, CanTransition(constants.ORDER_STATUS_DEPOSITING, constants.ORDER_STATUS_PENDING))
	assert.False(t, CanTransition(constants.ORDER_STATUS_CHAT_OPEN, constants.ORDER_STATUS_CANCELED))
	assert.False(t, CanTransition(constants.ORDER_STATUS_CHAT_OPEN, constants.ORDER_STATUS_DEPOSITING))

	// terminal statuses never move
	assert.False(t, CanTransition(constants.ORDER_STATUS_TRADE_COMPLETE, constants.ORDER_STATUS_CHAT_OPEN))
	assert.False(t, CanTransition(constants.ORDER_STATUS_TRADE_COMPLETE, constants.ORDER_STATUS_CANCELED))
	assert.False(t, CanTransition(constants.ORDER_STATUS_CANCELED, constants.ORDER_STATUS_PENDING))

	// a transition to the current status is always a no-op, not an error
	assert.True(t, CanTransition(constants.ORDER_STATUS_CANCELED, constants.ORDER_STATUS_CANCELED))
	assert.True(t, CanTransition(constants.ORDER_STATUS_PENDING, constants.ORDER_STATUS_PENDING))
}

func TestTransitionOrder(t *testing.T) {
	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := db.Order{
		MakerID:    1,
		AmountMsat: 100_000,
		Status:     constants.ORDER_STATUS_PENDING,
		Direction:  constants.ORDER_DIRECTION_BUY,
	}
	svc.DB.Create(&dbOrder)

	changed, err := TransitionOrder(svc.DB, &dbOrder, constants.ORDER_STATUS_DEPOSITING)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, constants.ORDER_STATUS_DEPOSITING, dbOrder.Status)

	var storedOrder db.Order
	svc.DB.First(&storedOrder, dbOrder.ID)
	assert.Equal(t, constants.ORDER_STATUS_DEPOSITING, storedOrder.Status)

	// repeating the transition changes nothing
	changed, err = TransitionOrder(svc.DB, &dbOrder, constants.ORDER_STATUS_DEPOSITING)
	require.NoError(t, err)
	assert.False(t, changed)

	// illegal transitions are rejected before touching the row
	_, err = TransitionOrder(svc.DB, &dbOrder, constants.ORDER_STATUS_TRADE_COMPLETE)
	assert.True(t, IsValidationError(err))
}

func TestTransitionOrder_ConcurrentChange(t *testing.T) {
	svc, err := tests.CreateTestService(t)
	require.NoError(t, err)
	defer svc.Remove()

	dbOrder := db.Order{
		MakerID:    1,
		AmountMsat: 100_000,
		Status:     constants.ORDER_STATUS_PENDING,
		Direction:  constants.ORDER_DIRECTION_BUY,
	}
	svc.DB.Create(&dbOrder)

	// another writer moved the row after our read
	svc.DB.Model(&db.Order{}).Where("id = ?", dbOrder.ID).
		Update("status", constants.ORDER_STATUS_CANCELED)

	_, err = TransitionOrder(svc.DB, &dbOrder, constants.ORDER_STATUS_DEPOSITING)
	assert.True(t, IsConsistencyError(err))
}
