package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// Letterhead identity printed on quotations, invoices and receipts.
	GarageName    string
	GarageAddress string
	GaragePhone   string
	GarageEmail   string

	BackupDir      string
	AttachmentsDir string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "garage.db"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		GarageName:    getEnv("GARAGE_NAME", "THE CAR BUDDIES"),
		GarageAddress: getEnv("GARAGE_ADDRESS", "661 Baobab Road"),
		GaragePhone:   getEnv("GARAGE_PHONE", "0789292789 / 0772576803"),
		GarageEmail:   getEnv("GARAGE_EMAIL", ""),

		BackupDir:      getEnv("BACKUP_DIR", "./backups"),
		AttachmentsDir: getEnv("ATTACHMENTS_DIR", "./attachments"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variable is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.SMTPUsername == "" {
		log.Println("[WARN] SMTP_USERNAME is not set, outgoing email is disabled")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s is not a number, using default %d", key, def)
	}
	return def
}
