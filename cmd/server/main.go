package main

import (
	"net/http"

	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/database"
	"github.com/HoneyKnight/foodgram-project-react/logger"
	"github.com/HoneyKnight/foodgram-project-react/routes"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system env vars")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	router, err := routes.SetupRouter(db, cfg)
	if err != nil {
		logger.Fatal("router setup failed", zap.Error(err))
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
