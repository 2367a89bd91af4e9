package constants

// shared constants used by multiple packages

const (
	ORDER_STATUS_PENDING        = "pending"
	ORDER_STATUS_DEPOSITING     = "depositing"
	ORDER_STATUS_CHAT_OPEN      = "chat_open"
	ORDER_STATUS_TRADE_COMPLETE = "trade_complete"
	ORDER_STATUS_CANCELED       = "canceled"

	ORDER_DIRECTION_BUY  = "buy"
	ORDER_DIRECTION_SELL = "sell"
)

const (
	INVOICE_STATUS_UNPAID   = "unpaid"
	INVOICE_STATUS_PENDING  = "pending"
	INVOICE_STATUS_ACCEPTED = "accepted"
	INVOICE_STATUS_PAID     = "paid"
	INVOICE_STATUS_SETTLED  = "settled"
	INVOICE_STATUS_CANCELED = "canceled"

	INVOICE_KIND_HOLD = "hold"
	INVOICE_KIND_FULL = "full"

	INVOICE_ROLE_MAKER = "maker"
	INVOICE_ROLE_TAKER = "taker"
)

const (
	PAYOUT_STATUS_PENDING       = "pending"
	PAYOUT_STATUS_FIAT_RECEIVED = "fiat_received"
	PAYOUT_STATUS_COMPLETE      = "complete"
)

// each side posts a bond of this percentage of the trade amount, rounded down
const BOND_PERCENT = 5

const (
	HOLD_INVOICE_CLTV      = 144
	INVOICE_EXPIRY_SECONDS = 86400
)
