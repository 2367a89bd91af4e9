package clnrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/civkit/civkit-api-sub000/constants"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
)

// the node can be slow or unreachable; every call carries this bound
const requestTimeout = 30 * time.Second

type CLNRestService struct {
	baseUrl  string
	macaroon string
	client   *http.Client
}

func NewCLNRestService(ctx context.Context, baseUrl string, macaroonHex string) (lnclient.LNClient, error) {
	if baseUrl == "" || macaroonHex == "" {
		return nil, errors.New("one or more required payment node configuration are missing")
	}

	svc := &CLNRestService{
		baseUrl:  strings.TrimSuffix(baseUrl, "/"),
		macaroon: macaroonHex,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}

	var nodeInfo *lnclient.NodeInfo
	var err error
	maxRetries := 5
	for i := range maxRetries {
		nodeInfo, err = svc.GetInfo(ctx)
		if err == nil {
			break
		}
		logger.Logger.Error().Err(err).
			Int("iteration", i).
			Msg("Failed to connect to payment node, retrying in 2s")

		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			logger.Logger.Error().Err(ctx.Err()).Msg("Context canceled during payment node connection retries")
			return nil, ctx.Err()
		}
	}
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to connect to payment node on final attempt, not attempting further retries")
		return nil, err
	}

	logger.Logger.Info().
		Str("pubkey", nodeInfo.Pubkey).
		Str("alias", nodeInfo.Alias).
		Msg("Connected to payment node")

	return svc, nil
}

type invoiceResponse struct {
	Bolt11      string `json:"bolt11"`
	PaymentHash string `json:"payment_hash"`
	ExpiresAt   int64  `json:"expires_at"`
}

type holdInvoiceLookupResponse struct {
	State      string `json:"state"`
	HtlcExpiry uint32 `json:"htlc_expiry"`
}

type listedInvoice struct {
	PaymentHash string `json:"payment_hash"`
	Bolt11      string `json:"bolt11"`
	Status      string `json:"status"`
	AmountMsat  uint64 `json:"amount_msat"`
}

type listInvoicesResponse struct {
	Invoices []listedInvoice `json:"invoices"`
}

type payResponse struct {
	Status          string `json:"status"`
	PaymentPreimage string `json:"payment_preimage"`
	FeeMsat         uint64 `json:"fee_msat"`
}

type getInfoResponse struct {
	Id          string `json:"id"`
	Alias       string `json:"alias"`
	BlockHeight uint32 `json:"blockheight"`
}

func (svc *CLNRestService) CreateHoldInvoice(ctx context.Context, amountMsat uint64, label string, description string) (*lnclient.Invoice, error) {
	var resp invoiceResponse
	err := svc.call(ctx, http.MethodPost, "/v1/holdinvoice", map[string]interface{}{
		"amount_msat": amountMsat,
		"label":       label,
		"description": description,
		"cltv":        constants.HOLD_INVOICE_CLTV,
		"expiry":      constants.INVOICE_EXPIRY_SECONDS,
	}, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint64("amount_msat", amountMsat).
			Str("label", label).
			Msg("Failed to create hold invoice")
		return nil, err
	}

	return invoiceFromResponse(&resp)
}

func (svc *CLNRestService) LookupHoldInvoice(ctx context.Context, paymentHash string) (*lnclient.HoldInvoiceState, error) {
	var resp holdInvoiceLookupResponse
	err := svc.call(ctx, http.MethodPost, "/v1/holdinvoicelookup", map[string]interface{}{
		"payment_hash": paymentHash,
	}, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("payment_hash", paymentHash).
			Msg("Failed to lookup hold invoice")
		return nil, err
	}

	switch resp.State {
	case lnclient.HOLD_INVOICE_STATE_OPEN,
		lnclient.HOLD_INVOICE_STATE_ACCEPTED,
		lnclient.HOLD_INVOICE_STATE_SETTLED,
		lnclient.HOLD_INVOICE_STATE_CANCELED:
	default:
		return nil, lnclient.NewGatewayErrorFromErr(fmt.Errorf("unknown hold invoice state %q", resp.State))
	}

	return &lnclient.HoldInvoiceState{
		State:      resp.State,
		HtlcExpiry: resp.HtlcExpiry,
	}, nil
}

func (svc *CLNRestService) CreateInvoice(ctx context.Context, amountMsat uint64, label string, description string) (*lnclient.Invoice, error) {
	var resp invoiceResponse
	err := svc.call(ctx, http.MethodPost, "/v1/invoice", map[string]interface{}{
		"amount_msat": amountMsat,
		"label":       label,
		"description": description,
		"cltv":        constants.HOLD_INVOICE_CLTV,
		"expiry":      constants.INVOICE_EXPIRY_SECONDS,
	}, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).
			Uint64("amount_msat", amountMsat).
			Str("label", label).
			Msg("Failed to create invoice")
		return nil, err
	}

	return invoiceFromResponse(&resp)
}

func (svc *CLNRestService) SettleHoldInvoice(ctx context.Context, paymentHash string) error {
	var resp holdInvoiceLookupResponse
	err := svc.call(ctx, http.MethodPost, "/v1/holdinvoicesettle", map[string]interface{}{
		"payment_hash": paymentHash,
	}, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("payment_hash", paymentHash).
			Msg("Failed to settle hold invoice")
		return err
	}
	return nil
}

func (svc *CLNRestService) PayInvoice(ctx context.Context, paymentRequest string) (*lnclient.PayInvoiceResponse, error) {
	var resp payResponse
	err := svc.call(ctx, http.MethodPost, "/v1/pay", map[string]interface{}{
		"invoice": paymentRequest,
	}, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to pay invoice")
		return nil, err
	}

	status := lnclient.PAYMENT_STATUS_FAILED
	if resp.Status == "complete" {
		status = lnclient.PAYMENT_STATUS_COMPLETE
	}

	return &lnclient.PayInvoiceResponse{
		Status:   status,
		Preimage: resp.PaymentPreimage,
		FeeMsat:  resp.FeeMsat,
	}, nil
}

func (svc *CLNRestService) ListInvoices(ctx context.Context) ([]lnclient.ListedInvoice, error) {
	var resp listInvoicesResponse
	err := svc.call(ctx, http.MethodGet, "/v1/listinvoices", nil, &resp)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list invoices")
		return nil, err
	}

	invoices := make([]lnclient.ListedInvoice, 0, len(resp.Invoices))
	for _, invoice := range resp.Invoices {
		invoices = append(invoices, lnclient.ListedInvoice{
			PaymentHash:    invoice.PaymentHash,
			PaymentRequest: invoice.Bolt11,
			Status:         invoice.Status,
			AmountMsat:     invoice.AmountMsat,
		})
	}
	return invoices, nil
}

func (svc *CLNRestService) GetInfo(ctx context.Context) (*lnclient.NodeInfo, error) {
	var resp getInfoResponse
	err := svc.call(ctx, http.MethodGet, "/v1/getinfo", nil, &resp)
	if err != nil {
		return nil, err
	}
	return &lnclient.NodeInfo{
		Pubkey:      resp.Id,
		Alias:       resp.Alias,
		BlockHeight: resp.BlockHeight,
	}, nil
}

func (svc *CLNRestService) Shutdown() error {
	svc.client.CloseIdleConnections()
	return nil
}

func invoiceFromResponse(resp *invoiceResponse) (*lnclient.Invoice, error) {
	if resp.Bolt11 == "" || resp.PaymentHash == "" {
		return nil, lnclient.NewGatewayErrorFromErr(errors.New("node response is missing payment request or payment hash"))
	}

	var expiresAt *time.Time
	if resp.ExpiresAt > 0 {
		expiresAtValue := time.Unix(resp.ExpiresAt, 0)
		expiresAt = &expiresAtValue
	}

	return &lnclient.Invoice{
		PaymentRequest: resp.Bolt11,
		PaymentHash:    resp.PaymentHash,
		ExpiresAt:      expiresAt,
	}, nil
}

func (svc *CLNRestService) call(ctx context.Context, method string, path string, payload map[string]interface{}, result interface{}) error {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, svc.baseUrl+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("macaroon", svc.macaroon)
	req.Header.Set("encodingtype", "hex")

	resp, err := svc.client.Do(req)
	if err != nil {
		return lnclient.NewGatewayErrorFromErr(err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return lnclient.NewGatewayErrorFromErr(err)
	}

	if resp.StatusCode >= 300 {
		return lnclient.NewGatewayError(resp.StatusCode, string(responseBody))
	}

	if err := json.Unmarshal(responseBody, result); err != nil {
		return lnclient.NewGatewayErrorFromErr(err)
	}

	return nil
}
