package http

import "github.com/gin-gonic/gin"

// Register registers the character sheet routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Load)
	rg.GET("/state", h.State)
	rg.PUT("/abilities/:ability", h.SetAbility)
	rg.PUT("/level", h.SetLevel)
	rg.PUT("/skills/:skill/proficiency", h.SetProficiency)
	rg.PUT("/fields/:field", h.SetField)
	rg.POST("/portrait/error", h.PortraitError)
	rg.GET("/back", h.Back)
	rg.GET("/ws", h.Live)
}
