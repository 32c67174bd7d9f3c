package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/middleware"
	"github.com/careconnect/careconnect-api/models"
	"github.com/careconnect/careconnect-api/stores"
)

// SignedInUser registers a user through the real session store, opens a
// session for it, and returns the identity plus the Bearer token to
// present on requests.
func SignedInUser(t *testing.T, db *gorm.DB, cfg *config.Config, name, email, password string) (*models.Identity, string) {
	t.Helper()

	store := stores.NewSessionStore(db)
	identity, err := store.Register(name, email, password)
	if err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}

	token, err := middleware.GenerateSessionToken(cfg, identity.ID, identity.Email)
	if err != nil {
		t.Fatalf("Failed to mint session token: %v", err)
	}
	if err := store.CreateSession(identity.ID, token); err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}

	return identity, token
}
