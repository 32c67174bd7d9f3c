package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/services"
)

// AdviceRequest represents the request body for a care-advice query
type AdviceRequest struct {
	Query string `json:"query" binding:"required"`
}

// GetAdvice handles POST /api/v1/advice - forwards a free-text question
// to the advice service and returns the completion. There is no retry:
// an upstream failure surfaces directly to the caller.
func GetAdvice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A query is required",
				"details": err.Error(),
			},
		})
		return
	}

	advice := services.GetAdviceService()
	if advice == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADVICE_ERROR",
				"message": "Advice service is not configured",
			},
		})
		return
	}

	text, err := advice.GenerateAdvice(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("Advice generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADVICE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"advice": text,
		},
	})
}
