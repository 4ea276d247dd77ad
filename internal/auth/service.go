package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardapio/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
)

type registerInput struct {
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

var registerMessages = validation.Messages{
	"FullName.required": "missing required fields",
	"FullName.min":      "Nome deve ter pelo menos 2 caracteres",
	"Email.required":    "missing required fields",
	"Email.email":       "Email inválido",
	"Password.required": "missing required fields",
	"Password.min":      "Senha deve ter pelo menos 6 caracteres",
}

type Service struct {
	repo   UserRepository
	roles  RoleRepository
	secret []byte
	logger *zap.Logger
}

func NewService(repo UserRepository, roles RoleRepository, secret []byte, logger *zap.Logger) *Service {
	return &Service{repo: repo, roles: roles, secret: secret, logger: logger}
}

// REGISTER
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*User, error) {
	in := registerInput{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := validation.Struct(in, registerMessages); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(in.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:    in.Email,
		Password: string(hashedPassword),
	}

	// ExistsByEmail is only a fast path; a concurrent sign-up is caught by
	// the repository's uniqueness check.
	if err := s.repo.Create(ctx, user, in.FullName); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// LOGIN returns the user and a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Session resolves the user behind an authenticated request.
func (s *Service) Session(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// HasRole satisfies middleware.RoleChecker.
func (s *Service) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return s.roles.HasRole(ctx, userID, role)
}
