package orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHeartbeat = 25 * time.Second

type Handler struct {
	service    *Service
	subscriber Subscriber
	logger     *zap.Logger
	heartbeat  time.Duration
}

func NewHandler(service *Service, subscriber Subscriber, logger *zap.Logger) *Handler {
	return &Handler{
		service:    service,
		subscriber: subscriber,
		logger:     logger,
		heartbeat:  defaultHeartbeat,
	}
}

// --------------------------------------------------
// GET /orders
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toViews(list)})
}

// --------------------------------------------------
// PATCH /orders/:id/status
// --------------------------------------------------
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView{Order: *o, StatusLabel: o.Status.Label()})
}

// --------------------------------------------------
// GET /orders/stream (Server-Sent Events)
// --------------------------------------------------
func (h *Handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	restaurantID, err := h.service.RestaurantID(ctx, c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}

	events, unsubscribe := h.subscriber.Subscribe(ctx, restaurantID)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	snapshot := func() bool {
		list, err := h.service.ListForRestaurant(ctx, restaurantID)
		if err != nil {
			if ctx.Err() == nil {
				h.logger.Error("order snapshot failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
			}
			return false
		}
		c.SSEvent("orders", toViews(list))
		c.Writer.Flush()
		return true
	}

	if !snapshot() {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if !snapshot() {
				return
			}
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRestaurantRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": "/settings"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("orders request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
