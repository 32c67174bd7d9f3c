package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/middleware"
	"github.com/careconnect/careconnect-api/models"
	"github.com/careconnect/careconnect-api/services"
	"github.com/careconnect/careconnect-api/stores"
)

// CreateBookingRequest represents the request body for creating a booking.
// Transport bookings require service/transport types and a dropoff
// address; nursing bookings require nurse/care types and hours.
type CreateBookingRequest struct {
	ServiceCategory     string `json:"service_category" binding:"required,oneof=transport nursing"`
	ServiceType         string `json:"service_type" binding:"omitempty,oneof=medical non-medical"`
	TransportType       string `json:"transport_type" binding:"omitempty,oneof=standard wheelchair stretcher"`
	NurseType           string `json:"nurse_type" binding:"omitempty,oneof=registered practical specialized"`
	CareType            string `json:"care_type" binding:"omitempty,oneof=home facility telehealth"`
	Hours               int    `json:"hours" binding:"omitempty,gt=0"`
	Date                string `json:"date" binding:"required"`
	Time                string `json:"time" binding:"required"`
	PickupAddress       string `json:"pickup_address" binding:"required"`
	DropoffAddress      string `json:"dropoff_address" binding:"omitempty"`
	SpecialRequirements string `json:"special_requirements" binding:"omitempty"`
}

// CreateBooking handles POST /api/v1/bookings - creates a booking owned
// by the signed-in user, priced from the fixed rate table
func CreateBooking(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	fields, err := buildBookingFields(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	store := stores.NewBookingStore(config.GetDB())
	booking, err := store.Create(userID, *fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create booking",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    booking,
	})
}

// ListBookings handles GET /api/v1/bookings - lists the signed-in
// user's bookings in creation order
func ListBookings(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	store := stores.NewBookingStore(config.GetDB())
	bookings, err := store.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list bookings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// GetBooking handles GET /api/v1/bookings/:id - fetches one of the
// signed-in user's bookings
func GetBooking(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	store := stores.NewBookingStore(config.GetDB())
	booking, err := store.FindByID(userID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel - cancels one
// of the signed-in user's bookings
func CancelBooking(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	store := stores.NewBookingStore(config.GetDB())
	booking, err := store.Cancel(userID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// buildBookingFields validates category-specific fields, checks that
// the schedule is in the future, and fills in the server-computed price.
func buildBookingFields(req CreateBookingRequest) (*stores.BookingFields, error) {
	fields := stores.BookingFields{
		ServiceCategory:     req.ServiceCategory,
		Date:                req.Date,
		Time:                req.Time,
		PickupAddress:       req.PickupAddress,
		SpecialRequirements: req.SpecialRequirements,
	}

	scheduled, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.Time)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD and time must be HH:MM")
	}
	if !scheduled.After(time.Now()) {
		return nil, errors.New("booking must be scheduled in the future")
	}

	switch req.ServiceCategory {
	case models.CategoryTransport:
		if req.ServiceType == "" || req.TransportType == "" {
			return nil, errors.New("transport bookings require service_type and transport_type")
		}
		if req.DropoffAddress == "" {
			return nil, errors.New("transport bookings require a dropoff address")
		}
		price, err := services.TransportQuote(req.ServiceType, req.TransportType)
		if err != nil {
			return nil, err
		}
		fields.ServiceType = req.ServiceType
		fields.TransportType = req.TransportType
		fields.DropoffAddress = req.DropoffAddress
		fields.Price = price

	case models.CategoryNursing:
		if req.NurseType == "" || req.CareType == "" {
			return nil, errors.New("nursing bookings require nurse_type and care_type")
		}
		price, err := services.NursingQuote(req.NurseType, req.CareType, req.Hours)
		if err != nil {
			return nil, err
		}
		fields.NurseType = req.NurseType
		fields.CareType = req.CareType
		fields.Hours = req.Hours
		fields.DropoffAddress = models.DropoffNotApplicable
		fields.Price = price
	}

	return &fields, nil
}

// respondBookingError maps booking store errors to HTTP responses.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOKING_NOT_FOUND",
				"message": "Booking not found",
			},
		})
	case errors.Is(err, stores.ErrBookingNotCancellable):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOKING_NOT_CANCELLABLE",
				"message": "Booking can no longer be cancelled",
			},
		})
	case errors.Is(err, stores.ErrBookingNotPayable):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOKING_NOT_PAYABLE",
				"message": "Booking can no longer be paid",
			},
		})
	case errors.Is(err, stores.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "A signed-in user is required",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Booking operation failed",
			},
		})
	}
}
