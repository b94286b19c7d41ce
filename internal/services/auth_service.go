package services

import (
	"fmt"
	"log"
	"time"

	"pasar/internal/apperrors"
	"pasar/internal/auth"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
)

// AuthService handles registration, login, and token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	events    AccountEventPublisher
}

// NewAuthService creates a new AuthService. events may be nil, in
// which case event publication is skipped.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, events AccountEventPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
		events:    events,
	}
}

// Register hashes the password and creates a new account with the
// default capability set. A duplicate email fails with a conflict.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("email '%s' already registered", email))
	}

	digest, salt, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		PasswordDigest: digest,
		Salt:           salt,
		Capabilities:   models.DefaultCapabilities,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	publishAccountEvent(s.events, "account.registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Login authenticates by email and password and returns a signed JWT.
// Unknown email and wrong password produce the same generic error.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	if !auth.VerifyPassword(password, user.PasswordDigest, user.Salt) {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, apperrors.Unauthorized("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.Unauthorized("invalid token")
}
