// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"crypto/md5" //nolint:gosec // gravatar addressing, not password material
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Avatar       string
	IsAdmin      bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		firstName, lastName, email, passwordHash, avatar string,
	) (*UserInfo, error)
}

type Service struct {
	users  UserProvider
	issuer session.Issuer
}

func NewService(users UserProvider, issuer session.Issuer) *Service {
	return &Service{users: users, issuer: issuer}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.Create(
		ctx,
		req.FirstName,
		req.LastName,
		email,
		passwordHash,
		GravatarURL(email),
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &AuthResponse{User: toUserResponse(user)}, nil
}

// Login verifies credentials and issues a fresh assertion. A missing
// account and a wrong password are indistinguishable to the caller, and
// both cost one full hash verification.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, session.Handle, error) {
	user, err := s.users.GetByEmail(
		ctx,
		strings.ToLower(strings.TrimSpace(req.Email)),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // burn the hash cost to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, session.Handle{}, ErrInvalidCredentials
		}
		return nil, session.Handle{}, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, session.Handle{}, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, session.Handle{}, ErrInvalidCredentials
	}

	role := session.RoleUser
	if user.IsAdmin {
		role = session.RoleAdmin
	}

	handle, err := s.issuer.Issue(ctx, session.Identity{
		UserID: user.ID,
		Role:   role,
	})
	if err != nil {
		return nil, session.Handle{}, fmt.Errorf("issue session: %w", err)
	}

	return &AuthResponse{
		User:  toUserResponse(user),
		Token: handle.Token(),
	}, handle, nil
}

// Logout revokes the presented assertion. The revocation must land
// before the response is written; a failed revoke is reported, not
// swallowed.
func (s *Service) Logout(ctx context.Context, value string) error {
	if err := s.issuer.Revoke(ctx, value); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// GravatarURL derives the avatar address the same way the storefront
// always has: md5 of the lowercased email, 300px, pg-rated, mystery-man
// fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%x?s=300&r=pg&d=mm",
		sum,
	)
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
