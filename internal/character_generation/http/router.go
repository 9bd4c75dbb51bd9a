package http

import "github.com/gin-gonic/gin"

// Register registers the generator routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.View)
	rg.POST("/submit", h.Submit)
	rg.POST("/reset", h.Reset)
	rg.GET("/fun-fact", h.FunFact)
}
