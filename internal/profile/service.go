package profile

import (
	"context"
	"strings"

	"cardapio/internal/validation"
)

// UpdateInput mirrors the profile form of the settings page.
type UpdateInput struct {
	FullName string `json:"full_name" validate:"min=2"`
	Phone    string `json:"phone"`
}

var updateMessages = validation.Messages{
	"FullName.min": "Nome deve ter pelo menos 2 caracteres",
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Update validates the form and saves it. An empty phone clears the field.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (*Profile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validation.Struct(in, updateMessages); err != nil {
		return nil, err
	}

	p := &Profile{
		ID:       userID,
		FullName: in.FullName,
		Phone:    optional(in.Phone),
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
