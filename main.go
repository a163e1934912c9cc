package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	routes "github.com/curerise/curerise-backend-go/routes"
	seed "github.com/curerise/curerise-backend-go/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer cfg.Logger.Sync()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cfg.MongoClient.Disconnect(ctx); err != nil {
			cfg.Logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	if cfg.SeedDB {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.Run(ctx, cfg); err != nil {
			cancel()
			cfg.Logger.Fatal("seeding failed", zap.Error(err))
		}
		cancel()
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.SetupRoutes(r, cfg)

	cfg.Logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		cfg.Logger.Fatal("server exited", zap.Error(err))
	}
}
