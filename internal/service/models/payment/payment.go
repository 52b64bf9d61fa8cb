package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/currency"
)

// Method is the closed set of supported payment methods.
type Method string

const (
	MethodCard Method = "card"
)

// Status represents the lifecycle state of a payment.
type Status string

const (
	StatusCreated   Status = "created"
	StatusProcessed Status = "processed"
	StatusRefunded  Status = "refunded"
)

// DefaultGateway is used for card payments when the caller does not name one.
const DefaultGateway = "stripe"

var (
	ErrMethodRequired  = errors.New("payment method is required")
	ErrUnknownMethod   = errors.New("unknown payment method")
	ErrMissingCard     = errors.New("card payment is missing card details")
	ErrIllegalStatus   = errors.New("illegal payment status transition")
	ErrCardNumberEmpty = errors.New("card number is empty")
)

// Instrument is the capability every payment method provides.
type Instrument interface {
	Verify() error
	Process() error
	Refund() error
}

// Payment represents a payment record. ID is zero until the payment has been
// stored.
type Payment struct {
	ID          int64             `json:"id"`
	Method      Method            `json:"method"`
	AmountCents int64             `json:"amountCents"`
	Currency    currency.Currency `json:"currency"`
	Date        time.Time         `json:"date"`
	Status      Status            `json:"status"`

	Card *CardDetails `json:"card,omitempty"`
}

// CardDetails holds the card-specific attributes of a card payment.
type CardDetails struct {
	Number     string    `json:"number"`
	ExpiryDate time.Time `json:"expiryDate"`
	Gateway    string    `json:"gateway"`
}

// Details carries the partial, caller-supplied attributes a payment is built
// from. AmountCents is ignored: checkout always overwrites the amount with
// cart subtotal plus shipment fee.
type Details struct {
	Method      Method    `json:"method"`
	AmountCents int64     `json:"amountCents"`
	CardNumber  string    `json:"cardNumber"`
	ExpiryDate  time.Time `json:"expiryDate"`
	Gateway     string    `json:"gateway"`
}

// Build constructs an unsaved payment from partial details, applying the
// method-specific defaults. It performs no I/O; persistence is a separate
// step.
func Build(d Details) (*Payment, error) {
	if d.Method == "" {
		return nil, ErrMethodRequired
	}

	p := &Payment{
		Method:   d.Method,
		Currency: currency.CurrencyUSD,
		Date:     time.Now(),
		Status:   StatusCreated,
	}

	switch d.Method {
	case MethodCard:
		card := &CardDetails{
			Number:     d.CardNumber,
			ExpiryDate: d.ExpiryDate,
			Gateway:    d.Gateway,
		}
		if card.ExpiryDate.IsZero() {
			// TODO: defaulting a missing expiry date to now makes the card
			// appear expired immediately; needs a product decision on what a
			// sane default is. Kept as-is to match the billing flow upstream
			// systems expect.
			card.ExpiryDate = time.Now()
		}
		if card.Gateway == "" {
			card.Gateway = DefaultGateway
		}
		p.Card = card
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, d.Method)
	}

	return p, nil
}

// Verify checks that the payment carries everything its method requires.
func (p *Payment) Verify() error {
	switch p.Method {
	case MethodCard:
		if p.Card == nil {
			return ErrMissingCard
		}
		if p.Card.Number == "" {
			return ErrCardNumberEmpty
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, p.Method)
	}
}

// Process marks the payment as captured.
func (p *Payment) Process() error {
	if p.Status != StatusCreated {
		return ErrIllegalStatus
	}
	if err := p.Verify(); err != nil {
		return err
	}
	p.Status = StatusProcessed

	return nil
}

// Refund reverses a processed payment.
func (p *Payment) Refund() error {
	if p.Status != StatusProcessed {
		return ErrIllegalStatus
	}
	p.Status = StatusRefunded

	return nil
}
