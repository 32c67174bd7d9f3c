package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/stores"
)

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokenIssuer identifies tokens minted by this service.
const tokenIssuer = "careconnect-api"

// GenerateSessionToken mints a signed session token for the user. The
// token's lifetime matches the durable session record it accompanies.
func GenerateSessionToken(cfg *config.Config, userID, email string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique per token so two sign-ins never collide on the
			// stored session hash
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stores.SessionTTL)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateSessionToken parses and validates a session token string.
func ValidateSessionToken(cfg *config.Config, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RequireSession checks the Bearer token and the durable session record
// behind it. A malformed or stale token is treated as "no session": the
// request is rejected with 401 and no distinction is leaked.
func RequireSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c)
			return
		}

		if _, err := ValidateSessionToken(cfg, token); err != nil {
			unauthorized(c)
			return
		}

		// The signature alone is not enough: sign-out revokes the
		// durable session record, so look it up.
		store := stores.NewSessionStore(config.GetDB())
		identity, err := store.CurrentIdentity(token)
		if err != nil || identity == nil {
			unauthorized(c)
			return
		}

		c.Set("user_id", identity.ID)
		c.Set("session_token", token)
		c.Next()
	}
}

// ExtractBearerToken pulls the token out of an Authorization header.
func ExtractBearerToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetSessionToken extracts the raw session token from the Gin context
func GetSessionToken(c *gin.Context) (string, error) {
	token, exists := c.Get("session_token")
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Session token not found in context"}
	}

	tokenStr, ok := token.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_TOKEN", Message: "Session token is not a string"}
	}

	return tokenStr, nil
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "A valid session is required",
		},
	})
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
