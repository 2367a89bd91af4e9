package orders

import (
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
)

// canonical transition table; forward only, canceled and trade_complete
// are terminal
var orderTransitions = map[string][]string{
	constants.ORDER_STATUS_PENDING: {
		constants.ORDER_STATUS_DEPOSITING,
		constants.ORDER_STATUS_CANCELED,
	},
	constants.ORDER_STATUS_DEPOSITING: {
		constants.ORDER_STATUS_CHAT_OPEN,
		constants.ORDER_STATUS_CANCELED,
	},
	constants.ORDER_STATUS_CHAT_OPEN: {
		constants.ORDER_STATUS_TRADE_COMPLETE,
	},
	constants.ORDER_STATUS_TRADE_COMPLETE: {},
	constants.ORDER_STATUS_CANCELED:       {},
}

// CanTransition reports whether an order may move between the two
// statuses. A transition to the current status is always allowed; it is
// applied as a no-op, never an error.
func CanTransition(from string, to string) bool {
	if from == to {
		return true
	}
	return slices.Contains(orderTransitions[from], to)
}

// TransitionOrder validates the status change against the transition
// table and applies it inside tx, guarded on the status the caller
// read. Returns false without writing when the order already has the
// target status.
func TransitionOrder(tx *gorm.DB, order *db.Order, to string) (bool, error) {
	if order.Status == to {
		return false, nil
	}
	if !CanTransition(order.Status, to) {
		return false, NewValidationError(fmt.Sprintf("illegal order status transition from %s to %s", order.Status, to))
	}

	result := tx.Model(&db.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, NewConsistencyError(fmt.Sprintf("order %d status changed concurrently", order.ID))
	}

	order.Status = to
	return true, nil
}
