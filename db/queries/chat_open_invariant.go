package queries

import (
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
)

// ChatOpenInvariantMet reports whether an order's deposits are fully
// locked: exactly two hold invoices accepted and, for sell-direction
// orders, the full-amount invoice paid. For buy-direction orders the
// full-invoice condition is vacuously true.
func ChatOpenInvariantMet(tx *gorm.DB, order *db.Order) bool {
	var acceptedHolds int64
	tx.Model(&db.Invoice{}).
		Where("order_id = ? AND kind = ? AND status = ?", order.ID, constants.INVOICE_KIND_HOLD, constants.INVOICE_STATUS_ACCEPTED).
		Count(&acceptedHolds)

	if acceptedHolds != 2 {
		return false
	}

	if order.Direction != constants.ORDER_DIRECTION_SELL {
		return true
	}

	var paidFull int64
	tx.Model(&db.Invoice{}).
		Where("order_id = ? AND kind = ? AND status = ?", order.ID, constants.INVOICE_KIND_FULL, constants.INVOICE_STATUS_PAID).
		Count(&paidFull)

	return paidFull > 0
}
