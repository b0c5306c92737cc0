package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"artifai/internal/logging"
	"artifai/internal/model"
	"artifai/internal/pkg/jwtutil"
	"artifai/internal/repository"
)

const minPasswordLength = 8

var (
	ErrInvalidInput      = errors.New("username, email and password are required")
	ErrPasswordTooShort  = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrUsernameExists    = errors.New("Username already exists")
	ErrEmailExists       = errors.New("Email already registered")
	ErrInvalidCredential = errors.New("Invalid username or password")
	ErrUnauthenticated   = errors.New("authentication required")
)

// SessionRevoker records logged-out session tokens. Optional.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	userRepo    *repository.UserRepository
	revocations SessionRevoker
	secret      string
	sessionTTL  time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token   string
	Session *jwtutil.Claims
	User    *model.User
}

func NewAuthService(userRepo *repository.UserRepository, revocations SessionRevoker, secret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		revocations: revocations,
		secret:      secret,
		sessionTTL:  sessionTTL,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existingByName, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login returns ErrInvalidCredential for both an unknown username and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, claims, err := jwtutil.GenerateToken(s.secret, s.sessionTTL, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Session: claims, User: user}, nil
}

// Authenticate validates a session token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*jwtutil.Claims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := jwtutil.ParseToken(s.secret, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrUnauthenticated
		}
	}
	return claims, nil
}

// CurrentUser loads the account behind a session. A session whose user no
// longer exists is ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, session *jwtutil.Claims) error {
	if session == nil || s.revocations == nil || session.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, session.ID, session.ExpiresAt.Time)
}

// SafeNextPath returns next when it is a same-origin relative path and
// fallback otherwise.
func SafeNextPath(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") {
		return fallback
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return next
}
