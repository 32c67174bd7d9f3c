package models

import (
	"time"

	"gorm.io/gorm"
)

// Service categories
const (
	CategoryTransport = "transport"
	CategoryNursing   = "nursing"
)

// Transport service types
const (
	ServiceTypeMedical    = "medical"
	ServiceTypeNonMedical = "non-medical"
)

// Transport vehicle types
const (
	TransportStandard   = "standard"
	TransportWheelchair = "wheelchair"
	TransportStretcher  = "stretcher"
)

// Nurse types
const (
	NurseRegistered  = "registered"
	NursePractical   = "practical"
	NurseSpecialized = "specialized"
)

// Care settings for nursing bookings
const (
	CareHome       = "home"
	CareFacility   = "facility"
	CareTelehealth = "telehealth"
)

// Booking statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// DropoffNotApplicable is the sentinel dropoff address for nursing
// bookings, which have no destination leg.
const DropoffNotApplicable = "N/A"

// Booking represents a transport or nursing-care reservation owned by
// exactly one user. OwnerID is set at creation and never changes.
type Booking struct {
	ID                  string         `gorm:"primaryKey" json:"id"`
	OwnerID             string         `gorm:"not null;index" json:"owner_id"`
	Owner               User           `gorm:"foreignKey:OwnerID" json:"-"`
	ServiceCategory     string         `gorm:"not null" json:"service_category"` // transport or nursing
	ServiceType         string         `json:"service_type,omitempty"`           // transport: medical or non-medical
	TransportType       string         `json:"transport_type,omitempty"`         // transport: standard, wheelchair, stretcher
	NurseType           string         `json:"nurse_type,omitempty"`             // nursing: registered, practical, specialized
	CareType            string         `json:"care_type,omitempty"`              // nursing: home, facility, telehealth
	Hours               int            `json:"hours,omitempty"`                  // nursing: booked hours, > 0
	Date                string         `gorm:"not null" json:"date"`             // YYYY-MM-DD
	Time                string         `gorm:"not null" json:"time"`             // HH:MM
	PickupAddress       string         `gorm:"not null" json:"pickup_address"`
	DropoffAddress      string         `gorm:"not null" json:"dropoff_address"`
	SpecialRequirements string         `json:"special_requirements,omitempty"`
	Price               float64        `gorm:"not null;check:price >= 0" json:"price"`
	Status              string         `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus       string         `gorm:"not null;default:'pending'" json:"payment_status"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// CanCancel reports whether the booking may still be cancelled.
// Cancelled is terminal and completed bookings cannot be cancelled.
func (b *Booking) CanCancel() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanPay reports whether payment may be completed for the booking.
// Payment and confirmation always change together, so a cancelled or
// completed booking is no longer payable.
func (b *Booking) CanPay() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ScheduledAt parses the booking's date and time into a single moment.
func (b *Booking) ScheduledAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", b.Date+" "+b.Time)
}
