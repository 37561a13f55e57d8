// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (rules) → UserRepository (store)
//	                   ↘ TokenService (JWT)  ↘ PasswordService (bcrypt)
//
// Google OAuth is the primary identity path; explicit registration exists
// for accounts created without a provider (and optionally carries a
// password so they can sign back in).
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/auth"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/repository"
)

const MaxUserNameLength = 100

// AuthService handles sign-in and registration.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record with the issued JWT so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginOrRegisterGoogle completes the OAuth callback: upsert the user
// keyed by Google's stable subject (first sign-in creates the account with
// empty lists), then issue a JWT.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, profile *auth.GoogleUser) (*AuthResult, error) {
	if profile == nil || profile.Subject == "" {
		return nil, fmt.Errorf("service/auth: missing Google profile")
	}

	// The provider subject IS the user id — no separate mapping table.
	user := &model.User{
		ID:      profile.Subject,
		Name:    profile.Name,
		Email:   profile.Email,
		Picture: profile.Picture,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting user %s: %w", profile.Subject, err)
	}

	s.logger.Info("user authenticated via Google",
		slog.String("userID", user.ID),
		slog.String("name", user.Name),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Register creates an account explicitly. Email and password are optional:
// without them the account is a plain named profile (the original
// registration flow); with them, LoginLocal can sign the user back in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Invalid("name", "name is required")
	}
	if len(name) > MaxUserNameLength {
		return nil, apperror.Invalid("name",
			fmt.Sprintf("name must be %d characters or less", MaxUserNameLength))
	}

	user := &model.User{
		Name:  name,
		Email: strings.TrimSpace(email),
	}

	if password != "" {
		if user.Email == "" {
			return nil, apperror.Invalid("email", "email is required when setting a password")
		}
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, apperror.Invalid("password", err.Error())
		}
		user.PasswordHash = hash
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to register user",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("name", user.Name),
	)
	return user, nil
}

// LoginLocal verifies an email/password pair and issues a JWT.
// Wrong email and wrong password both come back as the same Forbidden —
// login errors should not reveal which half was wrong.
func (s *AuthService) LoginLocal(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.Invalid("email", "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil || user.PasswordHash == "" {
		return nil, apperror.Forbidden("invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Forbidden("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token: %w", err)
	}

	s.logger.Info("user authenticated via password", slog.String("userID", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// GetUser returns a user's profile with both lists.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.MissingID("userId")
	}
	return s.users.GetUserByID(ctx, id)
}
