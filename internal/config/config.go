package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	AppPort       string
	AppEnv        string
	SessionSecret string
	AdminWhatsApp string
	RabbitMQURL   string
	CORSOrigin    string
	RunMigrations bool
	SeedDemoData  bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppPort:       envOr("APP_PORT", "8080"),
		AppEnv:        os.Getenv("APP_ENV"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminWhatsApp: envOr("ADMIN_WHATSAPP", "+212614606794"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		CORSOrigin:    envOr("CORS_ORIGIN", "http://localhost:3000"),
		RunMigrations: envBool("RUN_MIGRATIONS", false),
		SeedDemoData:  envBool("SEED_DEMO_DATA", false),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET not set, sessions will not survive a restart")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}
