package payments_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"

	"estiloplus-backend/internal/payments"
)

func TestParseCheckoutSession(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "cs_test_abc123",
		"amount_total": 1990,
		"metadata": {
			"userId": "3f1d3f72-9a8e-4a6b-b6e5-0a8e1f0c9d2e",
			"packageId": "8b0f2c44-5d6e-4f7a-8b9c-0d1e2f3a4b5c",
			"credits": "50"
		}
	}`)
	event := stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}

	session, err := payments.ParseCheckoutSession(event)

	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc123", session.ID)
	assert.Equal(t, int64(1990), session.AmountTotal)
	assert.Equal(t, "50", session.Metadata["credits"])
}

func TestParseCheckoutSession_InvalidPayload(t *testing.T) {
	event := stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(`not-json`)},
	}

	_, err := payments.ParseCheckoutSession(event)

	assert.Error(t, err)
}

func TestConstructEvent_RejectsBadSignature(t *testing.T) {
	client := payments.NewClient("sk_test_dummy", "whsec_dummy")

	_, err := client.ConstructEvent([]byte(`{}`), "t=1,v1=bogus")

	assert.Error(t, err)
}
