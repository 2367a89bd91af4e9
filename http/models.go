package http

import (
	"time"

	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/orders"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type infoResponse struct {
	Version    string `json:"version"`
	NodeOnline bool   `json:"nodeOnline"`
}

type createOrderRequest struct {
	TradeDetails  map[string]interface{} `json:"tradeDetails"`
	AmountMsat    uint64                 `json:"amountMsat"`
	Currency      string                 `json:"currency"`
	PaymentMethod string                 `json:"paymentMethod"`
	Direction     string                 `json:"direction"`
	Premium       float64                `json:"premium"`
}

type submitPayoutRequest struct {
	PaymentRequest string `json:"paymentRequest"`
}

type invoiceResponse struct {
	ID             uint       `json:"id"`
	PaymentRequest string     `json:"paymentRequest"`
	AmountMsat     uint64     `json:"amountMsat"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	PaymentHash    string     `json:"paymentHash"`
	Kind           string     `json:"kind"`
	Role           string     `json:"role"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

type orderResponse struct {
	ID            uint              `json:"id"`
	MakerID       uint              `json:"makerId"`
	TakerID       *uint             `json:"takerId,omitempty"`
	AmountMsat    uint64            `json:"amountMsat"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        string            `json:"status"`
	Direction     string            `json:"direction"`
	Premium       float64           `json:"premium"`
	Role          string            `json:"role,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	Invoices      []invoiceResponse `json:"invoices,omitempty"`
}

type listOrdersResponse struct {
	Orders     []orderResponse `json:"orders"`
	TotalCount uint64          `json:"totalCount"`
}

type payoutResponse struct {
	ID             uint      `json:"id"`
	OrderID        uint      `json:"orderId"`
	PaymentRequest string    `json:"paymentRequest"`
	AmountMsat     uint64    `json:"amountMsat"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toOrderResponse(dbOrder *db.Order, dbInvoices []db.Invoice, userID uint) *orderResponse {
	response := &orderResponse{
		ID:            dbOrder.ID,
		MakerID:       dbOrder.MakerID,
		TakerID:       dbOrder.TakerID,
		AmountMsat:    dbOrder.AmountMsat,
		Currency:      dbOrder.Currency,
		PaymentMethod: dbOrder.PaymentMethod,
		Status:        dbOrder.Status,
		Direction:     dbOrder.Direction,
		Premium:       dbOrder.Premium,
		Role:          orders.UserRole(dbOrder, userID),
		CreatedAt:     dbOrder.CreatedAt,
	}
	for _, dbInvoice := range dbInvoices {
		response.Invoices = append(response.Invoices, invoiceResponse{
			ID:             dbInvoice.ID,
			PaymentRequest: dbInvoice.PaymentRequest,
			AmountMsat:     dbInvoice.AmountMsat,
			Status:         dbInvoice.Status,
			Description:    dbInvoice.Description,
			PaymentHash:    dbInvoice.PaymentHash,
			Kind:           dbInvoice.Kind,
			Role:           dbInvoice.Role,
			CreatedAt:      dbInvoice.CreatedAt,
			ExpiresAt:      dbInvoice.ExpiresAt,
		})
	}
	return response
}

func toPayoutResponse(dbPayout *db.Payout) *payoutResponse {
	return &payoutResponse{
		ID:             dbPayout.ID,
		OrderID:        dbPayout.OrderID,
		PaymentRequest: dbPayout.PaymentRequest,
		AmountMsat:     dbPayout.AmountMsat,
		Status:         dbPayout.Status,
		CreatedAt:      dbPayout.CreatedAt,
	}
}
