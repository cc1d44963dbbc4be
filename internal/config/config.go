package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. Variables already set win.
func LoadEnv(logger *logrus.Logger) {
	once.Do(func() {
		envFile, ok := findEnvFile()
		if !ok {
			if logger != nil {
				logger.Debug("No .env file found, using environment variables")
			}
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			if logger != nil {
				logger.Warnf("Error loading .env file: %v", err)
			}
			return
		}
		if logger != nil {
			logger.Debugf("Loaded environment variables from %s", envFile)
		}
	})
}

func findEnvFile() (string, bool) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
