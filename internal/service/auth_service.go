package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both "user not found" and "wrong password"
	// so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles registration, login and token parsing.
type AuthService struct {
	users    repository.Users
	activity *ActivityService
	cfg      AuthConfig
}

func NewAuthService(users repository.Users, activity *ActivityService, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, activity: activity, cfg: cfg}
}

// Register checks username/email uniqueness, hashes the password and creates
// the user. The returned User carries the generated ID and no plaintext.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrUsernameTaken
	}

	existing, err = s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid password: %w", err)
	}

	u := models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id

	// Audit append is best-effort; registration already succeeded.
	_ = s.activity.Record(ctx, models.ActivityEvent{
		Type:        models.EventUserRegistered,
		ActorID:     id,
		Description: fmt.Sprintf("user %q registered", in.Username),
	})

	return u, nil
}

// Claims defines JWT claims: the identity triple plus standard expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login validates credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", err
	}

	_ = s.activity.Record(ctx, models.ActivityEvent{
		Type:        models.EventUserLogin,
		ActorID:     u.ID,
		Description: fmt.Sprintf("user %q logged in", username),
	})

	return token, nil
}

// ParseToken verifies the signature and expiry and returns the identity.
func (s *AuthService) ParseToken(accessToken string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: claims.UserID, Username: claims.Username, Name: claims.Name}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
