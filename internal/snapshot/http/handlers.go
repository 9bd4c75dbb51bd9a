package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	bridge *service.Bridge
}

func NewHandler(bridge *service.Bridge) *Handler {
	return &Handler{bridge: bridge}
}

// Register registers the snapshot routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
}

// Get returns the raw stored keys for the session.
func (h *Handler) Get(c *gin.Context) {
	rec, ok, err := h.bridge.Raw(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrSessionRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("snapshot_get", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read snapshot"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot"})
		return
	}

	c.JSON(http.StatusOK, rec)
}
