package stores

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careconnect/careconnect-api/models"
)

// Errors returned by the booking store.
var (
	// ErrNotAuthenticated is returned for mutations attempted without a
	// signed-in identity.
	ErrNotAuthenticated = errors.New("a signed-in user is required")

	// ErrBookingNotFound covers both a missing booking and a booking
	// owned by someone else; callers cannot distinguish the two.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotCancellable is returned when cancelling a completed
	// booking.
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")

	// ErrBookingNotPayable is returned when paying for a cancelled or
	// completed booking.
	ErrBookingNotPayable = errors.New("booking can no longer be paid")
)

// BookingFields holds the caller-supplied attributes of a new booking.
// ID, owner, status, and payment status are assigned by the store.
type BookingFields struct {
	ServiceCategory     string
	ServiceType         string
	TransportType       string
	NurseType           string
	CareType            string
	Hours               int
	Date                string
	Time                string
	PickupAddress       string
	DropoffAddress      string
	SpecialRequirements string
	Price               float64
}

// BookingStore manages bookings scoped to an owner. The owner id is
// passed on every call: when the signed-in identity changes, callers
// simply query again with the new id.
type BookingStore struct {
	db *gorm.DB
}

// NewBookingStore creates a booking store backed by the given database.
func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// List returns the owner's bookings in creation order. An empty owner id
// or an owner with no bookings yields an empty slice, not an error.
// Bookings belonging to other owners are never returned.
func (s *BookingStore) List(ownerID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if ownerID == "" {
		return bookings, nil
	}
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at asc").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Create inserts a new booking owned by ownerID with status and payment
// status both pending.
func (s *BookingStore) Create(ownerID string, fields BookingFields) (*models.Booking, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	booking := models.Booking{
		ID:                  uuid.New().String(),
		OwnerID:             ownerID,
		ServiceCategory:     fields.ServiceCategory,
		ServiceType:         fields.ServiceType,
		TransportType:       fields.TransportType,
		NurseType:           fields.NurseType,
		CareType:            fields.CareType,
		Hours:               fields.Hours,
		Date:                fields.Date,
		Time:                fields.Time,
		PickupAddress:       fields.PickupAddress,
		DropoffAddress:      fields.DropoffAddress,
		SpecialRequirements: fields.SpecialRequirements,
		Price:               fields.Price,
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentPending,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByID returns the booking with the given id if it belongs to
// ownerID. A booking that does not exist and a booking owned by another
// user both return ErrBookingNotFound.
func (s *BookingStore) FindByID(ownerID, bookingID string) (*models.Booking, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	var booking models.Booking
	err := s.db.Where("id = ? AND owner_id = ?", bookingID, ownerID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// CompletePayment marks the booking paid and confirmed. The two fields
// always change together, inside one transaction. Completing payment on
// an already confirmed and paid booking is a no-op success.
func (s *BookingStore) CompletePayment(ownerID, bookingID string) (*models.Booking, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", bookingID, ownerID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == models.StatusConfirmed && booking.PaymentStatus == models.PaymentPaid {
			return nil
		}
		if !booking.CanPay() {
			return ErrBookingNotPayable
		}

		booking.Status = models.StatusConfirmed
		booking.PaymentStatus = models.PaymentPaid
		return tx.Model(&booking).Updates(map[string]interface{}{
			"status":         models.StatusConfirmed,
			"payment_status": models.PaymentPaid,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel marks the booking cancelled. Cancelled is terminal: cancelling
// an already cancelled booking is a no-op success, and a completed
// booking cannot be cancelled. Payment status is left unchanged; a paid
// booking keeps its payment record after cancellation.
func (s *BookingStore) Cancel(ownerID, bookingID string) (*models.Booking, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", bookingID, ownerID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == models.StatusCancelled {
			return nil
		}
		if !booking.CanCancel() {
			return ErrBookingNotCancellable
		}

		booking.Status = models.StatusCancelled
		return tx.Model(&booking).Update("status", models.StatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
