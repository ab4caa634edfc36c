package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"

	"rfpapi/internal/auth"
	"rfpapi/internal/model"
	"rfpapi/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("could not validate credentials")
)

// AuthService defines the use cases around accounts and access tokens.
type AuthService interface {
	// Register creates an account with a bcrypt-hashed password.
	Register(ctx context.Context, email, password string) (*model.User, error)

	// Login verifies credentials and issues a signed bearer token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, error)

	// Authenticate resolves a bearer token back to its account.
	// Every failure mode collapses into ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// authService is a concrete implementation of AuthService.
type authService struct {
	users  repository.UserRepository
	secret string
}

// NewAuthService constructs a new AuthService signing tokens with secret.
func NewAuthService(users repository.UserRepository, secret string) AuthService {
	return &authService{users: users, secret: secret}
}

func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	// Reject display-name forms ("Bob <bob@x>"): the stored email must be
	// exactly the address, since it doubles as the token subject.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrInvalidPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, s.secret, auth.TokenValidity)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	subject, err := auth.ParseToken(token, s.secret)
	if err != nil || subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
