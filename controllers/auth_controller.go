package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/middleware"
	"github.com/careconnect/careconnect-api/models"
	"github.com/careconnect/careconnect-api/stores"
)

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /api/v1/auth/signup - registers a new user and
// opens a session for it
func Signup(c *gin.Context) {
	var req SignupRequest
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

	store := stores.NewSessionStore(config.GetDB())
	identity, err := store.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if err == stores.ErrDuplicateEmail {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_EMAIL",
					"message": "Email already in use",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create account",
			},
		})
		return
	}

	token, err := openSession(c, identity)
	if err != nil {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":  identity,
			"token": token,
		},
	})
}

// Login handles POST /api/v1/auth/login - authenticates a user and
// opens a session for it
func Login(c *gin.Context) {
	var req LoginRequest
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

	store := stores.NewSessionStore(config.GetDB())
	identity, err := store.Authenticate(req.Email, req.Password)
	if err != nil {
		if err == stores.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Invalid email or password",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to sign in",
			},
		})
		return
	}

	token, err := openSession(c, identity)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  identity,
			"token": token,
		},
	})
}

// Logout handles POST /api/v1/auth/logout - closes the current session.
// Logging out is idempotent: a second call with the same token fails
// auth at the middleware, and the session stays gone either way.
func Logout(c *gin.Context) {
	token, err := middleware.GetSessionToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract session information",
			},
		})
		return
	}

	store := stores.NewSessionStore(config.GetDB())
	if err := store.SignOut(token); err != nil {
		log.Printf("Failed to remove session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to sign out",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetMyProfile handles GET /api/v1/users/me - gets the signed-in identity
func GetMyProfile(c *gin.Context) {
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

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user.Identity(),
	})
}

// openSession mints a token and persists the session record for a
// freshly authenticated identity. On failure it writes the error
// response itself and returns a non-nil error.
func openSession(c *gin.Context, identity *models.Identity) (string, error) {
	cfg := config.GetConfig()
	token, err := middleware.GenerateSessionToken(cfg, identity.ID, identity.Email)
	if err != nil {
		log.Printf("Failed to generate session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to open session",
			},
		})
		return "", err
	}

	store := stores.NewSessionStore(config.GetDB())
	if err := store.CreateSession(identity.ID, token); err != nil {
		log.Printf("Failed to persist session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to open session",
			},
		})
		return "", err
	}

	return token, nil
}
