package service

import (
	"context"
	"errors"
	"time"

	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/ports"
)

// dummyHash is a bcrypt hash of a throwaway value. When a login names an
// unknown user we still burn one compare against it so the unknown-user
// and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer}
}

// Register creates an identity. The plaintext password is checked against
// the password policy, hashed, and discarded; only the hash is stored.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login checks the credentials and issues a token for the subject. An
// unknown username and a wrong password both return
// domain.ErrInvalidCredentials with comparable timing, so responses give
// no signal about which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.hasher.Verify(password, dummyHash)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if s.hasher.Verify(password, user.PasswordHash) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}
