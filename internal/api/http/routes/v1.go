package routes

import (
	genhttp "github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/http"
	genservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	sheethttp "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/http"
	sheetservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/service"
	snaphttp "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/http"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Generator *genservice.Generator
	Sheets    *sheetservice.SheetService
	Bridge    *snapservice.Bridge

	AllowedOrigins []string
}

func RegisterV1(api *gin.RouterGroup, dep V1Deps) {
	genhttp.NewHandler(dep.Generator).Register(api.Group("/generator"))
	sheethttp.NewHandler(dep.Sheets, dep.AllowedOrigins).Register(api.Group("/sheet"))
	snaphttp.NewHandler(dep.Bridge).Register(api.Group("/snapshot"))
}
