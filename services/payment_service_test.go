package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCard() CardDetails {
	return CardDetails{
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Alice Example",
		ExpiryDate: "12/28",
		CVV:        "123",
	}
}

func TestValidateCard(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*CardDetails)
		expectError bool
	}{
		{"valid card passes", func(c *CardDetails) {}, false},
		{"spaces in number are allowed", func(c *CardDetails) { c.CardNumber = "4242424242424242" }, false},
		{"four digit cvv allowed", func(c *CardDetails) { c.CVV = "1234" }, false},
		{"short card number rejected", func(c *CardDetails) { c.CardNumber = "4242" }, true},
		{"non-numeric card number rejected", func(c *CardDetails) { c.CardNumber = "4242 4242 4242 424x" }, true},
		{"missing name rejected", func(c *CardDetails) { c.CardName = "" }, true},
		{"short cvv rejected", func(c *CardDetails) { c.CVV = "12" }, true},
		{"alphabetic cvv rejected", func(c *CardDetails) { c.CVV = "abc" }, true},
		{"bad expiry rejected", func(c *CardDetails) { c.ExpiryDate = "2028-12" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			err := ValidateCard(card)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimulatedProcessorCharge(t *testing.T) {
	processor := NewSimulatedProcessor(10 * time.Millisecond)

	start := time.Now()
	err := processor.Charge(context.Background(), validCard(), 75)
	assert.NoError(t, err, "A well-formed card should be approved")
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond, "Charge should wait out the artificial delay")
}

func TestSimulatedProcessorRejectsBadInput(t *testing.T) {
	processor := NewSimulatedProcessor(0)

	err := processor.Charge(context.Background(), CardDetails{}, 75)
	assert.Error(t, err, "Empty card details should be rejected")

	err = processor.Charge(context.Background(), validCard(), 0)
	assert.Error(t, err, "Zero amount should be rejected")

	err = processor.Charge(context.Background(), validCard(), -10)
	assert.Error(t, err, "Negative amount should be rejected")
}

func TestSimulatedProcessorHonorsContext(t *testing.T) {
	processor := NewSimulatedProcessor(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := processor.Charge(ctx, validCard(), 75)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "A cancelled context should abort the delay")
}

func TestPaymentProcessorGlobal(t *testing.T) {
	original := GetPaymentProcessor()
	defer SetPaymentProcessor(original)

	processor := NewSimulatedProcessor(0)
	SetPaymentProcessor(processor)
	assert.Equal(t, PaymentProcessor(processor), GetPaymentProcessor())
}
