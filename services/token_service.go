package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"ruedo-cms/config"
	"ruedo-cms/metrics"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenService interface {
	IssuePair(user *models.User) (models.TokenPair, error)
	ParseAccess(token string) (*Claims, error)
	Rotate(refresh string) (models.TokenPair, error)
	Revoke(refresh string) error
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	userRepo   repositories.UserRepository
	blacklist  repositories.TokenBlacklistRepository
	now        func() time.Time
}

func NewTokenService(cfg *config.Config, userRepo repositories.UserRepository, blacklist repositories.TokenBlacklistRepository) TokenService {
	return &tokenService{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenLifetime(),
		refreshTTL: cfg.RefreshTokenLifetime(),
		userRepo:   userRepo,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

func (s *tokenService) IssuePair(user *models.User) (models.TokenPair, error) {
	access, err := s.sign(user.ID, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *tokenService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, TokenTypeAccess)
}

// Rotate exchanges a refresh token for a new pair. The presented token is
// revoked so it cannot be used again.
func (s *tokenService) Rotate(refresh string) (models.TokenPair, error) {
	claims, err := s.parseRefresh(refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil || !user.IsActive {
		return models.TokenPair{}, invalidToken()
	}

	if err := s.consume(claims); err != nil {
		return models.TokenPair{}, err
	}
	return s.IssuePair(user)
}

func (s *tokenService) Revoke(refresh string) error {
	claims, err := s.parseRefresh(refresh)
	if err != nil {
		return err
	}
	return s.consume(claims)
}

func (s *tokenService) parseRefresh(refresh string) (*Claims, error) {
	claims, err := s.parse(refresh, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	revoked, err := s.blacklist.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, invalidToken()
	}
	return claims, nil
}

// consume revokes the refresh token. Only the first caller presenting a given
// token succeeds; everyone else gets an invalid token error.
func (s *tokenService) consume(claims *Claims) error {
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	first, err := s.blacklist.RevokeOnce(claims.ID, ttl)
	if err != nil {
		return err
	}
	if !first {
		return invalidToken()
	}
	metrics.RecordRevokedToken()
	return nil
}

func (s *tokenService) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) parse(tokenString string, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, invalidToken()
	}
	if claims.TokenType != tokenType || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, invalidToken()
	}
	return claims, nil
}

func invalidToken() error {
	return models.ErrorUnauthorized{Message: models.MsgInvalidToken}
}
