package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/charforge-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/routes"
	genservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	sheetservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/service"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Generator      *genservice.Generator
	Sheets         *sheetservice.SheetService
	Bridge         *snapservice.Bridge
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader, middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware())

	routes.RegisterV1(api, routes.V1Deps{
		Generator:      dep.Generator,
		Sheets:         dep.Sheets,
		Bridge:         dep.Bridge,
		AllowedOrigins: dep.AllowedOrigins,
	})

	return r
}
