package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a signature header the way the gateway does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the shared secret.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload() []byte {
	return []byte(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_123",
				"object": "checkout.session",
				"amount_total": 50000
			}
		}
	}`)
}

func TestVerifyWebhookValidSignature(t *testing.T) {
	gateway := NewGateway("sk_test_key", testWebhookSecret)

	payload := checkoutCompletedPayload()
	header := signPayload(payload, testWebhookSecret, time.Now())

	event, err := gateway.VerifyWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_123", event.SessionID)
	assert.Equal(t, int64(50000), event.AmountTotal)
}

func TestVerifyWebhookWrongSecret(t *testing.T) {
	gateway := NewGateway("sk_test_key", testWebhookSecret)

	payload := checkoutCompletedPayload()
	header := signPayload(payload, "whsec_other_secret", time.Now())

	_, err := gateway.VerifyWebhook(payload, header)
	assert.Error(t, err)
}

func TestVerifyWebhookTamperedPayload(t *testing.T) {
	gateway := NewGateway("sk_test_key", testWebhookSecret)

	payload := checkoutCompletedPayload()
	header := signPayload(payload, testWebhookSecret, time.Now())

	tampered := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_evil","object":"checkout.session","amount_total":1}}}`)
	_, err := gateway.VerifyWebhook(tampered, header)
	assert.Error(t, err)
}

func TestVerifyWebhookStaleTimestamp(t *testing.T) {
	gateway := NewGateway("sk_test_key", testWebhookSecret)

	payload := checkoutCompletedPayload()
	header := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := gateway.VerifyWebhook(payload, header)
	assert.Error(t, err)
}

func TestVerifyWebhookOtherEventKind(t *testing.T) {
	gateway := NewGateway("sk_test_key", testWebhookSecret)

	payload := []byte(`{
		"id": "evt_2",
		"object": "event",
		"api_version": "2023-10-16",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "object": "payment_intent"}}
	}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	event, err := gateway.VerifyWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Empty(t, event.SessionID)
	assert.Zero(t, event.AmountTotal)
}
