// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing session JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avoronova/filecove/internal/common"
	"github.com/avoronova/filecove/internal/server/auth"
	"github.com/avoronova/filecove/internal/server/config"
	"github.com/avoronova/filecove/internal/server/models"
	"github.com/avoronova/filecove/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create accounts and mint their first session token
// - Login: verify credentials and mint a session token
// - GetCurrentUser: resolve the account behind a verified identity
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with the given username, email, and password
// and returns a signed session token, so a fresh account is usable without a
// separate login. The password is stored only as a bcrypt hash. A username or
// email already in use yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return "", nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if email == "" {
		return "", nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if len(password) < common.MinPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, common.MinPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, common.ErrInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return "", nil, common.ErrConflict
		}
		return "", nil, fmt.Errorf("error creating user: %v", err)
	}

	token, err := auth.GenerateToken(auth.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrInternal
	}
	return token, u, nil
}

// Login verifies the email/password pair and, on success, returns a signed
// session token. An unknown email and a wrong password are indistinguishable
// to the caller: both yield common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, common.ErrInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrInternal
	}
	return token, user, nil
}

// GetCurrentUser returns the account behind a verified token identity.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
