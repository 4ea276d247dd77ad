package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cardapio/internal/storage"
	"cardapio/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnsupportedLogo = errors.New("logo must be a png, jpg, jpeg or webp image")

var logoContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Uploader stores public objects and returns their URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// SaveInput mirrors the restaurant form of the settings page.
type SaveInput struct {
	Name        string `json:"name" validate:"min=2"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
}

var saveMessages = validation.Messages{
	"Name.min":    "Nome deve ter pelo menos 2 caracteres",
	"Email.email": "Email inválido",
}

type Service struct {
	repo     Repository
	uploader Uploader
	logger   *zap.Logger
}

// NewService wires the service. A nil uploader disables logo uploads.
func NewService(repo Repository, uploader Uploader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, uploader: uploader, logger: logger}
}

func (s *Service) GetMine(ctx context.Context, ownerID string) (*Restaurant, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// Save creates the owner's restaurant or updates the existing one. created
// reports which happened.
func (s *Service) Save(ctx context.Context, ownerID string, in SaveInput) (res *Restaurant, created bool, err error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := validation.Struct(in, saveMessages); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	res = &Restaurant{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: optional(in.Description),
		Address:     optional(in.Address),
		Phone:       optional(in.Phone),
		Email:       optional(in.Email),
	}

	if existing == nil {
		err := s.repo.Create(ctx, res)
		if err == nil {
			s.logger.Info("restaurant created",
				zap.String("restaurant_id", res.ID),
				zap.String("owner_id", ownerID),
			)
			return res, true, nil
		}
		if !errors.Is(err, ErrAlreadyExists) {
			return nil, false, err
		}

		// a concurrent save created it first; apply this one as an update
		existing, err = s.repo.GetByOwner(ctx, ownerID)
		if err != nil {
			return nil, false, err
		}
	}

	if err := s.update(ctx, existing, res); err != nil {
		return nil, false, err
	}
	return res, false, nil
}

func (s *Service) update(ctx context.Context, existing, res *Restaurant) error {
	res.ID = existing.ID
	res.LogoURL = existing.LogoURL
	res.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, res)
}

// UploadLogo stores the image and records its public URL on the owner's
// restaurant.
func (s *Service) UploadLogo(ctx context.Context, ownerID, filename string, body io.Reader) (string, error) {
	if s.uploader == nil {
		return "", storage.ErrNotConfigured
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := logoContentTypes[ext]
	if !ok {
		return "", ErrUnsupportedLogo
	}

	res, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("restaurants/%s/logo-%s%s", res.ID, uuid.New().String(), ext)
	url, err := s.uploader.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetLogo(ctx, res.ID, url); err != nil {
		return "", err
	}

	s.logger.Info("restaurant logo updated",
		zap.String("restaurant_id", res.ID),
		zap.String("key", key),
	)
	return url, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
