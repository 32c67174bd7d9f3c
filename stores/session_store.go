package stores

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/models"
)

// Errors returned by the session store.
var (
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Demo account credentials. The bypass only works when
// DEMO_LOGIN_ENABLED is set; the account is created in the directory on
// first use so bookings can reference it like any other owner.
const (
	demoEmail = "demo@example.com"
	demoPass  = "password"
	demoName  = "Demo User"
)

// SessionTTL is how long a session remains valid after sign-in.
const SessionTTL = 24 * time.Hour

// SessionStore manages the registered user directory and durable
// sign-in sessions.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a session store backed by the given database.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Register creates a new user in the directory and returns its identity.
// The email must not already exist; the comparison is an exact
// case-sensitive match, matching login behavior.
func (s *SessionStore) Register(name, email, password string) (*models.Identity, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return user.Identity(), nil
}

// Authenticate verifies an email/password pair against the directory and
// returns the matched identity. When the demo login is enabled, the fixed
// demo credentials always succeed, independent of the directory contents.
func (s *SessionStore) Authenticate(email, password string) (*models.Identity, error) {
	cfg := config.GetConfig()
	if cfg != nil && cfg.DemoLoginEnabled && email == demoEmail && password == demoPass {
		return s.ensureDemoUser()
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// CreateSession opens a durable session for the user and returns the
// opaque token the client must present. Only a hash of the token is
// persisted.
func (s *SessionStore) CreateSession(userID, token string) error {
	session := models.Session{
		TokenHash: HashToken(token),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	return s.db.Create(&session).Error
}

// CurrentIdentity resolves a token to the signed-in identity. A missing,
// expired, or otherwise unusable session yields (nil, nil): stale
// records mean "no session", not an error.
func (s *SessionStore) CurrentIdentity(token string) (*models.Identity, error) {
	var session models.Session
	err := s.db.Where("token_hash = ?", HashToken(token)).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired() {
		// Discard the stale record
		if err := s.db.Delete(&session).Error; err != nil {
			log.Printf("Failed to delete expired session: %v", err)
		}
		return nil, nil
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user.Identity(), nil
}

// SignOut removes the session for the token. Signing out with no active
// session is not an error.
func (s *SessionStore) SignOut(token string) error {
	return s.db.Where("token_hash = ?", HashToken(token)).Delete(&models.Session{}).Error
}

// HashToken computes the SHA-256 hash of a session token for storage.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ensureDemoUser finds or creates the demo account so the rest of the
// system can treat it like any registered user.
func (s *SessionStore) ensureDemoUser() (*models.Identity, error) {
	var user models.User
	err := s.db.Where("email = ?", demoEmail).First(&user).Error
	if err == nil {
		return user.Identity(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		ID:           uuid.New().String(),
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return user.Identity(), nil
}
