package application

import (
	"errors"
	"strings"
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = apperr.Conflict("User already exists")
	ErrInvalidCredentials = apperr.Authentication("Invalid credentials")
	ErrInvalidRole        = apperr.Validation("Invalid role")
)

type AuthService struct {
	Repos *repository.Repos
}

func NewAuthService(repos *repository.Repos) *AuthService {
	return &AuthService{Repos: repos}
}

func (s *AuthService) Register(input user.CreateUserInput) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return apperr.Validation("Invalid input")
	}

	role := input.Role
	if role == "" {
		role = string(user.RoleUser)
	}
	if !user.ValidRole(role) {
		return ErrInvalidRole
	}

	_, err := s.Repos.User.FindByEmail(email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.Repos.User.Create(&user.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         user.Role(role),
	})
}

// Login verifies credentials and issues an identity assertion. The stored
// role is always used, never a client-supplied one.
func (s *AuthService) Login(identifier, password string) (user.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(identifier))
	if email == "" || password == "" {
		return user.User{}, "", apperr.Validation("Email and password are required")
	}

	u, err := s.Repos.User.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	ttl := time.Duration(config.JwtExpiresIn) * time.Second
	token, err := middleware.GenerateToken(u.ID, u.Email, string(u.Role), ttl)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// Verify resolves a raw token into claims, for the token check endpoint.
func (s *AuthService) Verify(token string) (*types.Claims, error) {
	if token == "" {
		return nil, apperr.Authentication("Missing token")
	}
	claims, err := middleware.ParseToken(token)
	if err != nil || claims == nil {
		return nil, apperr.Authentication("Invalid token")
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, apperr.Authentication("Token expired")
	}
	return claims, nil
}
