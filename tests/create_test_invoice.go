package tests

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/stretchr/testify/require"
)

// CreateTestInvoice mints a signed bolt11 invoice with the given
// timestamp and a one hour expiry. Backdating the timestamp produces
// an expired invoice.
func CreateTestInvoice(t *testing.T, amountMsat uint64, timestamp time.Time) string {
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	var paymentHash [32]byte
	_, err = rand.Read(paymentHash[:])
	require.NoError(t, err)

	invoice, err := zpay32.NewInvoice(
		&chaincfg.MainNetParams,
		paymentHash,
		timestamp,
		zpay32.Amount(lnwire.MilliSatoshi(amountMsat)),
		zpay32.Description("payout"),
		zpay32.Expiry(time.Hour),
	)
	require.NoError(t, err)

	paymentRequest, err := invoice.Encode(zpay32.MessageSigner{
		SignCompact: func(msg []byte) ([]byte, error) {
			return ecdsa.SignCompact(privKey, chainhash.HashB(msg), true), nil
		},
	})
	require.NoError(t, err)

	return paymentRequest
}
