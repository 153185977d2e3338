package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talenthub/internal/domain/user"
	"talenthub/internal/pkg/jwt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Handle   string
	Role     user.Role
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

// SessionStore tracks the live refresh token per user so rotation and
// logout can invalidate older ones.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	IsCurrentRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	DropRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	users      user.Repository
	jwt        jwt.Service
	sessions   SessionStore
	refreshTTL time.Duration
}

func NewService(users user.Repository, jwtSvc jwt.Service, sessions SessionStore, refreshTTL time.Duration) *Service {
	return &Service{users: users, jwt: jwtSvc, sessions: sessions, refreshTTL: refreshTTL}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, TokenPair, error) {
	if s.users == nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = user.RoleCandidate
	}
	if role != user.RoleCandidate && role != user.RoleRecruiter {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	if exists {
		return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Handle:       strings.TrimSpace(in.Handle),
		Role:         role,
		Approved:     role == user.RoleCandidate,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitizeUser(u), pair, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	if s.users == nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitizeUser(u), pair, nil
}

// Refresh rotates the token pair. The presented refresh token must carry a
// valid signature and, when the session store is reachable, match the
// recorded one for its user.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if s.users == nil {
		return TokenPair{}, ErrInternal
	}
	if refreshToken == "" {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !s.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	if s.sessions != nil {
		current, err := s.sessions.IsCurrentRefreshToken(ctx, claims.UserID, refreshToken)
		if err == nil && !current {
			return TokenPair{}, ErrInvalidRefreshToken
		}
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.DropRefreshToken(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, u user.User) (TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role), u.Approved)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if s.sessions != nil {
		_ = s.sessions.SaveRefreshToken(ctx, u.ID, refresh, s.refreshTTL)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(password string) bool {
	return len(password) >= 8
}
