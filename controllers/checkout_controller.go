package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/middleware"
	"github.com/careconnect/careconnect-api/services"
	"github.com/careconnect/careconnect-api/stores"
)

// PaymentRequest represents the card details submitted at checkout
type PaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	CardName   string `json:"card_name" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// CompletePayment handles POST /api/v1/bookings/:id/payment - charges
// the simulated processor and, on success, marks the booking paid and
// confirmed in one step
func CompletePayment(c *gin.Context) {
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

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Please fill in all payment details",
				"details": err.Error(),
			},
		})
		return
	}

	store := stores.NewBookingStore(config.GetDB())

	// The booking must exist in the caller's scope before any charge
	booking, err := store.FindByID(userID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	card := services.CardDetails{
		CardNumber: req.CardNumber,
		CardName:   req.CardName,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	}
	processor := services.GetPaymentProcessor()
	if err := processor.Charge(c.Request.Context(), card, booking.Price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PAYMENT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	updated, err := store.CompletePayment(userID, booking.ID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}
