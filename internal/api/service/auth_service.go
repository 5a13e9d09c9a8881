package service

import (
	"errors"
	"time"

	"gamehub/internal/api/models"
	"gamehub/internal/api/repository"
	"gamehub/internal/config"
	"gamehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrLoginInUse         = errors.New("login already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the JWT payload: the authenticated principal's id and role.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(login, password string) (*models.User, error)
	Login(login, password string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
	}
}

// Register creates an active user with the default role.
func (s *authService) Register(login, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByLogin(login); err == nil {
		return nil, ErrLoginInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:    login,
		Password: hashed,
		Role:     models.RoleUser,
		Status:   models.UserActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginInUse
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a signed token. Unknown logins,
// wrong passwords and blocked users all fail the same way; nothing about
// which one it was leaks to the caller.
func (s *authService) Login(login, password string) (string, error) {
	user, err := s.userRepo.FindByLogin(login)
	if err != nil {
		// Dummy compare so a miss takes as long as a mismatch.
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", ErrInvalidCredentials
	}
	if user.Status == models.UserBlocked {
		return "", ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
