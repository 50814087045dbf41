package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/repository"
)

// TokenIssuer identifies tokens minted by this service.
const TokenIssuer = "localplate"

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload for access and refresh tokens.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair bundles the tokens returned on login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TokenService mints and verifies the JWTs that authenticate API requests
type TokenService interface {
	// IssuePair mints an access and refresh token for the user
	IssuePair(user *repository.User) (*TokenPair, error)

	// VerifyAccessToken parses an access token and returns the caller it
	// identifies
	VerifyAccessToken(token string) (*domain.User, error)

	// Refresh exchanges a valid refresh token for a new pair, re-reading
	// the user so role and status changes take effect
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type tokenService struct {
	repo       repository.Querier
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService signing with the given secret
func NewTokenService(repo repository.Querier, secret string, accessTTL, refreshTTL time.Duration) TokenService {
	return &tokenService{
		repo:       repo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *tokenService) IssuePair(user *repository.User) (*TokenPair, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	access, err := s.sign(user, tokenTypeAccess, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(user, tokenTypeRefresh, now, now.Add(s.refreshTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *tokenService) sign(user *repository.User, tokenType string, now, expiresAt time.Time) (string, error) {
	claims := Claims{
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   repository.ToUUID(user.ID).String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) parse(token, wantType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*domain.User, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.User{
		ID:    userID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, repository.UUID(userID))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if user.Status == string(domain.UserStatusSuspended) {
		return nil, domain.ErrAccountSuspended
	}

	return s.IssuePair(&user)
}
