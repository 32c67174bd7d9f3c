package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/models"
	"github.com/careconnect/careconnect-api/services"
	"github.com/careconnect/careconnect-api/stores"
)

func validCardBody() map[string]interface{} {
	return map[string]interface{}{
		"card_number": "4242424242424242",
		"card_name":   "Alice Smith",
		"expiry_date": "12/30",
		"cvv":         "123",
	}
}

func TestCompletePaymentEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupBookingTestDB(t)
	config.SetDB(db)
	createBookingTestUser(t, db, "user-a", "a@x.com")
	createBookingTestUser(t, db, "user-b", "b@x.com")

	// Instant processor keeps the suite fast
	original := services.GetPaymentProcessor()
	services.SetPaymentProcessor(services.NewSimulatedProcessor(0))
	defer services.SetPaymentProcessor(original)

	store := stores.NewBookingStore(db)
	booking, err := store.Create("user-a", stores.BookingFields{
		ServiceCategory: models.CategoryTransport,
		ServiceType:     models.ServiceTypeMedical,
		TransportType:   models.TransportStretcher,
		Date:            "2030-06-01",
		Time:            "10:00",
		PickupAddress:   "12 Elm Street",
		DropoffAddress:  "City Hospital",
		Price:           145,
	})
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/bookings/:id/payment", mockSessionMiddleware("user-a"), CompletePayment)

	otherRouter := gin.New()
	otherRouter.POST("/api/v1/bookings/:id/payment", mockSessionMiddleware("user-b"), CompletePayment)

	tests := []struct {
		name           string
		router         *gin.Engine
		bookingID      string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Fail with short card number",
			requestBody: func() map[string]interface{} {
				body := validCardBody()
				body["card_number"] = "4242"
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "PAYMENT_FAILED",
		},
		{
			name: "Fail with bad CVV",
			requestBody: func() map[string]interface{} {
				body := validCardBody()
				body["cvv"] = "12"
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "PAYMENT_FAILED",
		},
		{
			name: "Fail with missing card name",
			requestBody: func() map[string]interface{} {
				body := validCardBody()
				delete(body, "card_name")
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail for another owner's booking",
			router:         otherRouter,
			requestBody:    validCardBody(),
			expectedStatus: http.StatusNotFound,
			expectedError:  "BOOKING_NOT_FOUND",
		},
		{
			name:           "Fail for missing booking",
			bookingID:      "no-such-id",
			requestBody:    validCardBody(),
			expectedStatus: http.StatusNotFound,
			expectedError:  "BOOKING_NOT_FOUND",
		},
		{
			name:           "Successfully pay",
			requestBody:    validCardBody(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Paying again is a no-op success",
			requestBody:    validCardBody(),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.router
			if r == nil {
				r = router
			}
			id := tt.bookingID
			if id == "" {
				id = booking.ID
			}

			w := performJSON(r, "POST", "/api/v1/bookings/"+id+"/payment", tt.requestBody, "")
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				errData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errData["code"])
			} else {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "confirmed", data["status"])
				assert.Equal(t, "paid", data["payment_status"])
			}
		})
	}

	// Validation failures must not have touched the booking until the
	// successful charge
	updated, err := store.FindByID("user-a", booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestCompletePaymentOnCancelledBookingEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupBookingTestDB(t)
	config.SetDB(db)
	createBookingTestUser(t, db, "user-a", "a@x.com")

	original := services.GetPaymentProcessor()
	services.SetPaymentProcessor(services.NewSimulatedProcessor(0))
	defer services.SetPaymentProcessor(original)

	store := stores.NewBookingStore(db)
	booking, err := store.Create("user-a", stores.BookingFields{
		ServiceCategory: models.CategoryTransport,
		ServiceType:     models.ServiceTypeNonMedical,
		TransportType:   models.TransportStandard,
		Date:            "2030-06-01",
		Time:            "10:00",
		PickupAddress:   "12 Elm Street",
		DropoffAddress:  "City Hospital",
		Price:           50,
	})
	assert.NoError(t, err)
	_, err = store.Cancel("user-a", booking.ID)
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/bookings/:id/payment", mockSessionMiddleware("user-a"), CompletePayment)

	w := performJSON(router, "POST", "/api/v1/bookings/"+booking.ID+"/payment", validCardBody(), "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errData := response["error"].(map[string]interface{})
	assert.Equal(t, "BOOKING_NOT_PAYABLE", errData["code"])
}
