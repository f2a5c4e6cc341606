package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"estatehub/internal/auth"
	apperrors "estatehub/internal/errors"
	"estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/validators"

	"golang.org/x/crypto/bcrypt"
)

const searchResultLimit = 5

type UserService struct {
	repo      repositories.UserRepository
	validator validators.UserValidator
	jwtSecret string
	tokenTTL  time.Duration
	hashCost  int
}

func NewUserService(repo repositories.UserRepository, validator validators.UserValidator, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*auth.TokenDetails, *models.User, error) {
	email = normalizeEmail(email)
	if err := s.validator.ValidateRegister(name, email, password); err != nil {
		return nil, nil, err
	}

	// Check if email already exists
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrEmailTaken, email)
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The unique index still catches a concurrent registration.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	tokenDetails, err := auth.GenerateJWT(user.ID.Hex(), user.Name, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenDetails, user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*auth.TokenDetails, *models.User, error) {
	email = normalizeEmail(email)
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return nil, nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokenDetails, err := auth.GenerateJWT(user.ID.Hex(), user.Name, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenDetails, user, nil
}

// SearchByEmail returns up to five users whose email contains fragment, ignoring case.
func (s *UserService) SearchByEmail(ctx context.Context, fragment string) ([]models.UserSummary, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []models.UserSummary{}, nil
	}
	return s.repo.SearchByEmail(ctx, fragment, searchResultLimit)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
