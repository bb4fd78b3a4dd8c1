package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todolist-api/internal/domain"
	"todolist-api/internal/repository"
)

// TokenPair carries a short-lived signed access token together with the
// opaque refresh token that can redeem a new pair once.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenService issues and verifies caller credentials. Access tokens are
// HS256 JWTs with the user id as subject; refresh tokens are stored
// server-side and rotated on every use.
type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (*TokenPair, error)
	Verify(tokenString string) (int64, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type tokenService struct {
	refreshTokens repository.RefreshTokenRepository
	users         repository.UserRepository
	secret        []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(refreshTokens repository.RefreshTokenRepository, users repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration) TokenService {
	return &tokenService{
		refreshTokens: refreshTokens,
		users:         users,
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *tokenService) Issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"name": user.Name,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	stored := &domain.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if _, err := s.refreshTokens.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// Verify checks signature, expiry and signing method, and extracts the user
// id from the subject claim. Every failure collapses to ErrUnauthenticated.
func (s *tokenService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrUnauthenticated
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrUnauthenticated
	}

	return userID, nil
}

func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthenticated
	}

	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	// rotation: the redeemed token is dead whether or not issuing succeeds
	if err := s.refreshTokens.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.Issue(ctx, user)
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
