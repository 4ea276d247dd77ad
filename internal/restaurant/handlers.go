package restaurant

import (
	"errors"
	"net/http"

	"cardapio/internal/storage"
	"cardapio/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// --------------------------------------------------
// GET /restaurants/me
// --------------------------------------------------
func (h *Handler) GetMine(c *gin.Context) {
	res, err := h.service.GetMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// PUT /restaurants/me
// --------------------------------------------------
func (h *Handler) Save(c *gin.Context) {
	var req SaveInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, created, err := h.service.Save(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// --------------------------------------------------
// POST /restaurants/me/logo
// --------------------------------------------------
func (h *Handler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read logo"})
		return
	}
	defer src.Close()

	url, err := h.service.UploadLogo(c.Request.Context(), c.GetString("userID"), file.Filename, src)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case validation.IsValidationError(err), errors.Is(err, ErrUnsupportedLogo):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("restaurant request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar restaurante"})
	}
}
