package lnclient

import (
	"context"
	"fmt"
	"time"
)

// fine-grained HTLC states reported by the node for a hold invoice
const (
	HOLD_INVOICE_STATE_OPEN     = "open"
	HOLD_INVOICE_STATE_ACCEPTED = "accepted"
	HOLD_INVOICE_STATE_SETTLED  = "settled"
	HOLD_INVOICE_STATE_CANCELED = "canceled"
)

const (
	PAYMENT_STATUS_COMPLETE = "complete"
	PAYMENT_STATUS_FAILED   = "failed"
)

// coarse invoice statuses used in the node's invoice list
const (
	LISTED_INVOICE_STATUS_UNPAID  = "unpaid"
	LISTED_INVOICE_STATUS_PAID    = "paid"
	LISTED_INVOICE_STATUS_EXPIRED = "expired"
)

type Invoice struct {
	PaymentRequest string
	PaymentHash    string
	AmountMsat     uint64
	ExpiresAt      *time.Time
}

type HoldInvoiceState struct {
	State      string
	HtlcExpiry uint32
}

type ListedInvoice struct {
	PaymentHash    string
	PaymentRequest string
	Status         string
	AmountMsat     uint64
}

type PayInvoiceResponse struct {
	Status   string
	Preimage string
	FeeMsat  uint64
}

type NodeInfo struct {
	Pubkey      string
	Alias       string
	BlockHeight uint32
}

// LNClient wraps the external payment node. Reads (lookup, list) are
// safely retryable; settle and pay move funds and carry no idempotency
// token, so callers must not retry them blindly.
type LNClient interface {
	CreateHoldInvoice(ctx context.Context, amountMsat uint64, label string, description string) (*Invoice, error)
	LookupHoldInvoice(ctx context.Context, paymentHash string) (*HoldInvoiceState, error)
	CreateInvoice(ctx context.Context, amountMsat uint64, label string, description string) (*Invoice, error)
	SettleHoldInvoice(ctx context.Context, paymentHash string) error
	PayInvoice(ctx context.Context, paymentRequest string) (*PayInvoiceResponse, error)
	ListInvoices(ctx context.Context) ([]ListedInvoice, error)
	GetInfo(ctx context.Context) (*NodeInfo, error)
	Shutdown() error
}

// GatewayError is returned for a non-success response from the payment
// node, or a structurally invalid one (missing payment request or hash).
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func NewGatewayError(statusCode int, body string) error {
	return &GatewayError{StatusCode: statusCode, Body: body}
}

func NewGatewayErrorFromErr(err error) error {
	return &GatewayError{Err: err}
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment node request failed: %v", e.Err)
	}
	return fmt.Sprintf("payment node returned status %d: %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
