package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	svc      *service.SheetService
	upgrader *websocket.Upgrader
}

// NewHandler creates the sheet handler. allowedOrigins gates the live
// socket the same way CORS gates the REST routes.
func NewHandler(svc *service.SheetService, allowedOrigins []string) *Handler {
	return &Handler{svc: svc, upgrader: newUpgrader(allowedOrigins)}
}

type valueBody struct {
	Value string `json:"value"`
}

type proficiencyBody struct {
	Checked bool `json:"checked"`
}

// Load is the page load: a fresh sheet with saved inputs and the bridge snapshot applied.
func (h *Handler) Load(c *gin.Context) {
	st := h.svc.Load(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"sheet": st})
}

func (h *Handler) State(c *gin.Context) {
	st := h.svc.State(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"sheet": st})
}

func (h *Handler) SetAbility(c *gin.Context) {
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updates, err := h.svc.SetAbility(c.Request.Context(), middleware.SessionID(c), domain.Ability(c.Param("ability")), body.Value)
	if err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

func (h *Handler) SetLevel(c *gin.Context) {
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updates := h.svc.SetLevel(c.Request.Context(), middleware.SessionID(c), body.Value)
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

func (h *Handler) SetProficiency(c *gin.Context) {
	var body proficiencyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updates, err := h.svc.SetProficiency(c.Request.Context(), middleware.SessionID(c), c.Param("skill"), body.Checked)
	if err != nil {
		writeEditError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

func (h *Handler) SetField(c *gin.Context) {
	var body valueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SetField(c.Request.Context(), middleware.SessionID(c), c.Param("field"), body.Value); err != nil {
		writeEditError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PortraitError is reported by the page when the portrait image fails to load.
func (h *Handler) PortraitError(c *gin.Context) {
	h.svc.PortraitFailed(c.Request.Context(), middleware.SessionID(c))
	c.Status(http.StatusNoContent)
}

func (h *Handler) Back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.svc.BackToGenerator().Path)
}

func writeEditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownAbility),
		errors.Is(err, domain.ErrUnknownSkill),
		errors.Is(err, domain.ErrUnknownField):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update sheet"})
	}
}
