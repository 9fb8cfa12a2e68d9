package main

import (
	"net/http"
	"os"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/routes"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	config.Load()
	config.SetupLogger()
	config.ConnectDB()

	if config.Cfg.JWTSecret != "" {
		utils.Secret = []byte(config.Cfg.JWTSecret)
	}

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.LineItem{},
		&models.Quote{},
		&models.Invoice{},
		&models.Payment{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migration failed")
	}

	if err := os.MkdirAll(config.Cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", config.Cfg.UploadDir).Msg("could not create upload dir")
	}

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	routes.SetupRoutes(r)

	log.Info().Str("port", config.Cfg.Port).Msg("buildledger listening")
	if err := r.Run(":" + config.Cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
