package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Usserslalo/delixmi-backend-sub003/configs"
	"github.com/Usserslalo/delixmi-backend-sub003/entity"
	"github.com/Usserslalo/delixmi-backend-sub003/middlewares"
	"github.com/Usserslalo/delixmi-backend-sub003/routes"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// join table (many2many Product<->ModifierGroup)
	if err := db.SetupJoinTable(&entity.Product{}, "ModifierGroups", &entity.ProductModifierGroup{}); err != nil {
		log.Fatalf("setup join table failed: %v", err)
	}

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}
	if err := configs.SeedDemo(); err != nil {
		log.Fatalf("seed demo catalog failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.RequestLogger(logger))

	routes.RegisterRoutes(r, db, cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
