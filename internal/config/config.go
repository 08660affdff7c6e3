package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	DBUrl   string

	RSAPublicKey *rsa.PublicKey

	RedisURL string

	// Reminder channels. Empty values disable the channel; the sweep
	// itself still runs so overdue flags stay correct.
	RemindersEnabled bool
	SendGridAPIKey   string
	SendGridFrom     string
	SendGridFromName string
	SendGridSandbox  bool
	TwilioSID        string
	TwilioAuthToken  string
	TwilioFrom       string
}

// LoadConfig reads .env (when present) then the process environment,
// and fails fast on anything the server cannot run without.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found; relying on process environment")
	}

	cfg := &Config{
		AppName:  getEnv("APP_NAME", "rentowl"),
		AppPort:  mustEnv("APP_PORT"),
		DBUrl:    mustEnv("DB_URL"),
		RedisURL: os.Getenv("REDIS_URL"),
	}

	pubB64 := mustEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	cfg.RSAPublicKey, err = jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	cfg.RemindersEnabled = os.Getenv("REMINDERS_ENABLED") == "true"
	if cfg.RemindersEnabled {
		cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
		cfg.SendGridFrom = os.Getenv("SENDGRID_FROM_EMAIL")
		cfg.SendGridFromName = getEnv("SENDGRID_FROM_NAME", "RentOwl")
		cfg.SendGridSandbox = os.Getenv("SENDGRID_SANDBOX_MODE") == "true"
		cfg.TwilioSID = os.Getenv("TWILIO_ACCOUNT_SID")
		cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
		cfg.TwilioFrom = os.Getenv("TWILIO_FROM_NUMBER")
		if cfg.SendGridAPIKey == "" && cfg.TwilioSID == "" {
			utils.Logger.Fatal("REMINDERS_ENABLED is set but no SendGrid or Twilio credentials were provided")
		}
	}

	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
