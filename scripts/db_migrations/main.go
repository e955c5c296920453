package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/budgetforge/internal/config"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	_ = godotenv.Load()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	db, err := storage.Open(env)
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer db.Close()

	version, err := storage.Migrate(db.DB, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.Migrate")
		return
	}
	logger.WithFields(logrus.Fields{"version": version}).Info("Migrations applied")
}
