package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventCheckoutSessionCompleted signals a buyer finished paying for a
// hosted checkout session.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// DefaultTolerance bounds the age of an accepted webhook signature.
const DefaultTolerance = 5 * time.Minute

// ErrSignatureInvalid is returned when a webhook payload cannot be trusted.
var ErrSignatureInvalid = errors.New("webhook signature invalid")

// Event is a signed notification delivered by the payment provider.
// Delivery is at-least-once; consumers must be idempotent.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

type EventData struct {
	Object json.RawMessage `json:"object"`
}

// CheckoutSession decodes the event payload as a checkout session.
func (e *Event) CheckoutSession() (*CheckoutSession, error) {
	var s CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ConstructEvent verifies the signature header against the raw payload and
// returns the decoded event. The header carries a unix timestamp and an
// HMAC-SHA256 of "<timestamp>.<payload>": "t=1699999999,v1=<hex>".
// Signatures older than tolerance are rejected to limit replay.
func ConstructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration) (*Event, error) {
	ts, sigs, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}
	if tolerance > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return nil, ErrSignatureInvalid
		}
	}

	expected := computeSignature(ts, payload, secret)
	valid := false
	for _, sig := range sigs {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("webhook payload: %w", err)
	}
	return &ev, nil
}

// SignatureHeader produces a valid header for the given payload. Used by
// tests and local tooling; the provider produces the real ones.
func SignatureHeader(at time.Time, payload []byte, secret string) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(ts, payload, secret))
}

func parseSignatureHeader(header string) (ts int64, sigs []string, err error) {
	if header == "" {
		return 0, nil, ErrSignatureInvalid
	}
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, ErrSignatureInvalid
			}
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return 0, nil, ErrSignatureInvalid
	}
	return ts, sigs, nil
}

func computeSignature(ts int64, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
