package main

import (
	"github.com/sirupsen/logrus"

	"github.com/zachricha/medium-clone-api/internal/config"
	"github.com/zachricha/medium-clone-api/internal/database"
	"github.com/zachricha/medium-clone-api/internal/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Init(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("database init failed")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Error("database close failed")
		}
	}()

	router := routes.SetupRoutes(db.DB, cfg)

	logrus.WithField("port", cfg.Server.Port).Info("server listening")
	logrus.Fatal(router.Run(":" + cfg.Server.Port))
}
