package services

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CardDetails holds the payment form fields. No real gateway is
// involved; the details are validated for shape and then discarded.
type CardDetails struct {
	CardNumber string
	CardName   string
	ExpiryDate string // MM/YY
	CVV        string
}

// PaymentProcessor charges a card for a booking amount.
type PaymentProcessor interface {
	Charge(ctx context.Context, card CardDetails, amount float64) error
}

// paymentProcessor is the process-wide processor instance.
var paymentProcessor PaymentProcessor

// GetPaymentProcessor returns the configured payment processor.
func GetPaymentProcessor() PaymentProcessor {
	return paymentProcessor
}

// SetPaymentProcessor replaces the payment processor (used in tests and
// during startup wiring).
func SetPaymentProcessor(p PaymentProcessor) {
	paymentProcessor = p
}

// SimulatedProcessor approves every well-formed card after an artificial
// delay that stands in for gateway latency. The delay is served from a
// timer so a cancelled request context aborts the wait.
type SimulatedProcessor struct {
	delay time.Duration
}

// NewSimulatedProcessor creates a simulated processor with the given
// artificial delay.
func NewSimulatedProcessor(delay time.Duration) *SimulatedProcessor {
	return &SimulatedProcessor{delay: delay}
}

// Charge validates the card details and resolves after the configured
// delay. A negative or zero amount is rejected.
func (p *SimulatedProcessor) Charge(ctx context.Context, card CardDetails, amount float64) error {
	if err := ValidateCard(card); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("charge amount must be positive, got %.2f", amount)
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// ValidateCard checks the shape of the card details: a 16-digit number,
// a 3 or 4 digit CVV, an MM/YY expiry, and a non-empty cardholder name.
func ValidateCard(card CardDetails) error {
	number := strings.ReplaceAll(card.CardNumber, " ", "")
	if len(number) != 16 || !isDigits(number) {
		return fmt.Errorf("card number must be 16 digits")
	}
	if card.CardName == "" {
		return fmt.Errorf("cardholder name is required")
	}
	if len(card.CVV) != 3 && len(card.CVV) != 4 {
		return fmt.Errorf("CVV must be 3 or 4 digits")
	}
	if !isDigits(card.CVV) {
		return fmt.Errorf("CVV must be 3 or 4 digits")
	}
	if _, err := time.Parse("01/06", card.ExpiryDate); err != nil {
		return fmt.Errorf("expiry date must be in MM/YY format")
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
