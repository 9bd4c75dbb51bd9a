package http

import (
	"net/http"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	gen *service.Generator
}

func NewHandler(gen *service.Generator) *Handler {
	return &Handler{gen: gen}
}

func (h *Handler) View(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.gen.View(c.Request.Context(), middleware.SessionID(c))})
}

// Submit blocks until the image service answers. The loading view is
// visible through View in the meantime.
func (h *Handler) Submit(c *gin.Context) {
	var draft snapdomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := h.gen.Submit(c.Request.Context(), middleware.SessionID(c), draft)
	c.JSON(http.StatusOK, gin.H{"view": v})
}

func (h *Handler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": h.gen.Reset(c.Request.Context(), middleware.SessionID(c))})
}

func (h *Handler) FunFact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fun_fact": h.gen.FunFact()})
}
