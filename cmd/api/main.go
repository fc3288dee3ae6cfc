package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/config"
	dbpkg "github.com/northlight-studio/studio-scheduler/internal/db"
	"github.com/northlight-studio/studio-scheduler/internal/logger"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
