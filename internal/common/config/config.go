package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	DBPath       string
	DesignerURL  string
	ParamsPath   string // файл параметров по умолчанию, необязательный
}

// Load загружает конфигурацию из переменных окружения.
// Сначала читается .env (путь в ENV_FILE), реальные переменные он не перекрывает.
func Load() *Config {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		log.Printf("[CONFIG] .env skipped: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("DESIGNER_DB_PATH", "data/db/designs.db"),
		DesignerURL:  getEnv("DESIGNER_URL", "http://localhost:3001"),
		ParamsPath:   getEnv("DESIGN_PARAMS_PATH", ""),
	}
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
