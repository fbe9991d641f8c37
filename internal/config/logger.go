package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger builds the shared application logger. JSON output, level from
// LOG_LEVEL (info by default).
func InitLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
