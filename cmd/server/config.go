package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// config is the process configuration, read from the environment with an
// optional .env file for local development.
type config struct {
	Port                string
	FirebaseProjectID   string
	FirebaseCredentials string
	Brand               string
	ESystemsMode        bool
	CompletionThreshold int
	MaxSavedVAs         int
	AnalyticsURL        string
	AnalyticsToken      string
}

func loadConfig() config {
	// Missing .env is fine; deployed environments set real env vars.
	_ = godotenv.Load()

	return config{
		Port:                envOr("PORT", "8080"),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		Brand:               envOr("BRAND", "esystems"),
		ESystemsMode:        envBool("ESYSTEMS_MODE"),
		CompletionThreshold: envInt("PROFILE_COMPLETION_THRESHOLD", 80),
		MaxSavedVAs:         envInt("MAX_SAVED_VAS", 500),
		AnalyticsURL:        os.Getenv("ANALYTICS_URL"),
		AnalyticsToken:      os.Getenv("ANALYTICS_TOKEN"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
