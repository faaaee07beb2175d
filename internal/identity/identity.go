// Package identity manages credential records (auth accounts). It plays the
// role of the hosted identity provider in the original deployment: accounts
// are created, deleted and re-credentialed by privileged workflows, and each
// account shares its ID with a profile row in the users table.
package identity

import (
	"errors"

	"github.com/takamaro111/construction-management-app/internal/models"
)

var (
	ErrAccountNotFound    = errors.New("auth account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Provider is the credential-store interface used by the auth and member
// services. The temp flag on credential writes controls whether the issued
// plaintext password is retained for later administrative retrieval.
type Provider interface {
	// CreateAccount creates a new account with the given credentials.
	CreateAccount(email, password string, temp bool) (*models.AuthAccount, error)

	// DeleteAccount removes an account by ID.
	DeleteAccount(id string) error

	// SetPassword overwrites an account's credential.
	SetPassword(id, password string, temp bool) error

	// FindByEmail looks up an account by email.
	FindByEmail(email string) (*models.AuthAccount, error)

	// FindByID looks up an account by ID.
	FindByID(id string) (*models.AuthAccount, error)

	// VerifyPassword checks credentials and returns the matching account.
	VerifyPassword(email, password string) (*models.AuthAccount, error)
}
