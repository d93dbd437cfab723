package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/config"
	"github.com/classpulse/wordcloud-backend/internal/database"
	"github.com/classpulse/wordcloud-backend/internal/logger"
	"github.com/classpulse/wordcloud-backend/internal/middleware"
	"github.com/classpulse/wordcloud-backend/internal/routes"
	"github.com/classpulse/wordcloud-backend/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	hub := ws.NewHub(zlog)
	go hub.Run()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.AllowedOrigins),
		logger.GinMiddleware(zlog),
	)
	routes.Register(r, db, cfg, hub, zlog)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
