package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTableName(t *testing.T) {
	booking := Booking{}
	assert.Equal(t, "bookings", booking.TableName(), "Table name should be 'bookings'")
}

func TestBookingCanCancel(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected bool
	}{
		{"pending booking can be cancelled", StatusPending, true},
		{"confirmed booking can be cancelled", StatusConfirmed, true},
		{"completed booking cannot be cancelled", StatusCompleted, false},
		{"cancelled booking cannot be cancelled again", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := Booking{Status: tt.status}
			assert.Equal(t, tt.expected, booking.CanCancel())
		})
	}
}

func TestBookingCanPay(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected bool
	}{
		{"pending booking is payable", StatusPending, true},
		{"confirmed booking is payable", StatusConfirmed, true},
		{"completed booking is not payable", StatusCompleted, false},
		{"cancelled booking is not payable", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := Booking{Status: tt.status}
			assert.Equal(t, tt.expected, booking.CanPay())
		})
	}
}

func TestBookingScheduledAt(t *testing.T) {
	booking := Booking{Date: "2026-09-15", Time: "14:30"}

	scheduled, err := booking.ScheduledAt()
	assert.NoError(t, err, "Valid date and time should parse")
	assert.Equal(t, 2026, scheduled.Year())
	assert.Equal(t, 14, scheduled.Hour())
	assert.Equal(t, 30, scheduled.Minute())

	booking = Booking{Date: "not-a-date", Time: "14:30"}
	_, err = booking.ScheduledAt()
	assert.Error(t, err, "Malformed date should not parse")
}

func TestUserIdentityStripsCredential(t *testing.T) {
	user := User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	identity := user.Identity()
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Name, identity.Name)
	assert.Equal(t, user.Email, identity.Email)
}
