package orders

import (
	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/db"
)

// UserRole reports which side of the trade a user is on, or "" for a
// user that is on neither. Pure, no I/O.
func UserRole(order *db.Order, userID uint) string {
	if order.MakerID == userID {
		return constants.INVOICE_ROLE_MAKER
	}
	if order.TakerID != nil && *order.TakerID == userID {
		return constants.INVOICE_ROLE_TAKER
	}
	return ""
}

// BondAmountMsat is the collateral required from each side, rounded
// down.
func BondAmountMsat(amountMsat uint64) uint64 {
	return amountMsat * constants.BOND_PERCENT / 100
}
