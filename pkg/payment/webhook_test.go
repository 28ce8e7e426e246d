package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gocommerce/shop-api/pkg/payment"
)

const secret = "whsec_test"

var eventPayload = []byte(`{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"created": 1700000000,
	"data": {"object": {
		"id": "cs_1",
		"status": "complete",
		"amount_total": 5000,
		"currency": "usd",
		"client_reference_id": "cart-123",
		"customer_email": "buyer@example.com",
		"metadata": {"city": "Springfield"}
	}}
}`)

func TestConstructEvent_ValidSignature(t *testing.T) {
	header := payment.SignatureHeader(time.Now(), eventPayload, secret)

	ev, err := payment.ConstructEvent(eventPayload, header, secret, payment.DefaultTolerance)

	assert.NoError(t, err)
	assert.Equal(t, payment.EventCheckoutSessionCompleted, ev.Type)

	session, err := ev.CheckoutSession()
	assert.NoError(t, err)
	assert.Equal(t, int64(5000), session.AmountTotal)
	assert.Equal(t, "cart-123", session.ClientReferenceID)
	assert.Equal(t, "buyer@example.com", session.CustomerEmail)
	assert.Equal(t, "Springfield", session.Metadata["city"])
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	header := payment.SignatureHeader(time.Now(), eventPayload, "whsec_other")

	_, err := payment.ConstructEvent(eventPayload, header, secret, payment.DefaultTolerance)
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	header := payment.SignatureHeader(time.Now(), eventPayload, secret)
	tampered := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"amount_total":1}}}`)

	_, err := payment.ConstructEvent(tampered, header, secret, payment.DefaultTolerance)
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}

func TestConstructEvent_StaleTimestamp(t *testing.T) {
	header := payment.SignatureHeader(time.Now().Add(-10*time.Minute), eventPayload, secret)

	_, err := payment.ConstructEvent(eventPayload, header, secret, payment.DefaultTolerance)
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}

func TestConstructEvent_MissingHeader(t *testing.T) {
	_, err := payment.ConstructEvent(eventPayload, "", secret, payment.DefaultTolerance)
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}
