package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"studybot-backend/internal/models"
)

// AuthOutcome reports what RegisterOrVerify did with the credentials.
type AuthOutcome int

const (
	AuthRejected AuthOutcome = iota
	AuthCreated
	AuthAuthenticated
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, userID, passwordHash string) (bool, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterOrVerify implements implicit registration: the first password ever
// seen for a user_id becomes that account's password. Lookups that miss
// insert a new account; lookups that hit verify against the stored bcrypt
// hash. A rejected password returns *UnauthorizedError.
func (s *AuthService) RegisterOrVerify(ctx context.Context, userID, password string) (AuthOutcome, error) {
	if userID == "" || password == "" {
		return AuthRejected, &ValidationError{Message: "user_id and password are required"}
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Hash with bcrypt cost 12; the salt is embedded in the hash.
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), 12)
		if hashErr != nil {
			return AuthRejected, fmt.Errorf("failed to hash password: %w", hashErr)
		}

		created, createErr := s.users.CreateIfAbsent(ctx, userID, string(hash))
		if createErr != nil {
			return AuthRejected, &StoreError{Err: createErr}
		}
		if created {
			return AuthCreated, nil
		}

		// Lost a concurrent first-registration race. Verify against the
		// hash the winner stored.
		user, err = s.users.GetByID(ctx, userID)
	}
	if err != nil {
		return AuthRejected, &StoreError{Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthRejected, &UnauthorizedError{Message: "Invalid password"}
	}

	return AuthAuthenticated, nil
}
