package clnrest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *CLNRestService {
	logger.Init("1")
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &CLNRestService{
		baseUrl:  server.URL,
		macaroon: "abcd1234",
		client: &http.Client{
			Timeout: time.Second,
		},
	}
}

func TestCreateHoldInvoice(t *testing.T) {
	ctx := context.TODO()

	var gotPath, gotMacaroon string
	var gotPayload map[string]interface{}
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMacaroon = r.Header.Get("macaroon")
		json.NewDecoder(r.Body).Decode(&gotPayload)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"bolt11":       "lnbc100n1holdinvoice",
			"payment_hash": "abc123",
			"expires_at":   1756500000,
		})
	})

	invoice, err := svc.CreateHoldInvoice(ctx, 10_000, "bond-label", "maker bond")
	require.NoError(t, err)

	assert.Equal(t, "/v1/holdinvoice", gotPath)
	assert.Equal(t, "abcd1234", gotMacaroon)
	assert.Equal(t, float64(10_000), gotPayload["amount_msat"])
	assert.Equal(t, "bond-label", gotPayload["label"])

	assert.Equal(t, "lnbc100n1holdinvoice", invoice.PaymentRequest)
	assert.Equal(t, "abc123", invoice.PaymentHash)
	require.NotNil(t, invoice.ExpiresAt)
	assert.Equal(t, int64(1756500000), invoice.ExpiresAt.Unix())
}

func TestCreateHoldInvoice_NodeError(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is locked", http.StatusInternalServerError)
	})

	_, err := svc.CreateHoldInvoice(ctx, 10_000, "bond-label", "maker bond")
	require.Error(t, err)

	var gatewayErr *lnclient.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, http.StatusInternalServerError, gatewayErr.StatusCode)
	assert.Contains(t, gatewayErr.Body, "database is locked")
}

func TestCreateHoldInvoice_MissingFields(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"bolt11": "lnbc100n1holdinvoice",
		})
	})

	_, err := svc.CreateHoldInvoice(ctx, 10_000, "bond-label", "maker bond")
	require.Error(t, err)

	var gatewayErr *lnclient.GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
}

func TestLookupHoldInvoice(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/holdinvoicelookup", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"state":       "accepted",
			"htlc_expiry": 812345,
		})
	})

	state, err := svc.LookupHoldInvoice(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, lnclient.HOLD_INVOICE_STATE_ACCEPTED, state.State)
	assert.Equal(t, uint32(812345), state.HtlcExpiry)
}

func TestLookupHoldInvoice_UnknownState(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"state": "tangled",
		})
	})

	_, err := svc.LookupHoldInvoice(ctx, "abc123")
	require.Error(t, err)

	var gatewayErr *lnclient.GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
}

func TestPayInvoice(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pay", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":           "complete",
			"payment_preimage": "00ff00ff",
			"fee_msat":         1_250,
		})
	})

	response, err := svc.PayInvoice(ctx, "lnbc2500u1payout")
	require.NoError(t, err)
	assert.Equal(t, lnclient.PAYMENT_STATUS_COMPLETE, response.Status)
	assert.Equal(t, "00ff00ff", response.Preimage)
	assert.Equal(t, uint64(1_250), response.FeeMsat)
}

func TestPayInvoice_NonCompleteStatus(t *testing.T) {
	ctx := context.TODO()

	// anything but complete maps to failed, never optimistically complete
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "pending",
		})
	})

	response, err := svc.PayInvoice(ctx, "lnbc2500u1payout")
	require.NoError(t, err)
	assert.Equal(t, lnclient.PAYMENT_STATUS_FAILED, response.Status)
}

func TestListInvoices(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listinvoices", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"invoices": []map[string]interface{}{
				{"payment_hash": "hash1", "bolt11": "lnbc1", "status": "paid", "amount_msat": 10_000},
				{"payment_hash": "hash2", "bolt11": "lnbc2", "status": "unpaid", "amount_msat": 20_000},
			},
		})
	})

	invoices, err := svc.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "hash1", invoices[0].PaymentHash)
	assert.Equal(t, lnclient.LISTED_INVOICE_STATUS_PAID, invoices[0].Status)
	assert.Equal(t, uint64(20_000), invoices[1].AmountMsat)
}

func TestGetInfo(t *testing.T) {
	ctx := context.TODO()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/getinfo", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "02abcdef",
			"alias":       "escrow-node",
			"blockheight": 860_000,
		})
	})

	nodeInfo, err := svc.GetInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "02abcdef", nodeInfo.Pubkey)
	assert.Equal(t, "escrow-node", nodeInfo.Alias)
	assert.Equal(t, uint32(860_000), nodeInfo.BlockHeight)
}
