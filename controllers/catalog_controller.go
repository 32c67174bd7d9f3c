package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/models"
)

// ListServices handles GET /api/v1/services - returns the service
// catalog with the fixed rate table so clients can show price estimates
func ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"transport": gin.H{
				"service_types": []string{models.ServiceTypeMedical, models.ServiceTypeNonMedical},
				"transport_types": []gin.H{
					{"type": models.TransportStandard, "base_price": 50},
					{"type": models.TransportWheelchair, "base_price": 75},
					{"type": models.TransportStretcher, "base_price": 120},
				},
				"medical_premium": 25,
			},
			"nursing": gin.H{
				"nurse_types": []gin.H{
					{"type": models.NurseRegistered, "hourly_rate": 75},
					{"type": models.NursePractical, "hourly_rate": 60},
					{"type": models.NurseSpecialized, "hourly_rate": 90},
				},
				"care_types":        []string{models.CareHome, models.CareFacility, models.CareTelehealth},
				"home_care_premium": 15,
			},
		},
	})
}
