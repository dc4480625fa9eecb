package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// MongoDB question collection
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// ClientConfig holds configuration for the practice client.
type ClientConfig struct {
	APIBaseURL      string
	DataPath        string // sqlite file for local progress/session storage
	SessionLimit    int
	AdvanceDelay    time.Duration // correct-answer highlight before auto-advance
	ActivityTimeout time.Duration // recent-activity banner window
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		MongoURI:        NormalizeMongoURI(mustGetenv("MONGODB_URI")),
		MongoDatabase:   getenvDefault("MONGODB_DB_NAME", "nclex"),
		MongoCollection: getenvDefault("MONGODB_COLLECTION", "questions"),
	}
}

func LoadClient() *ClientConfig {
	_ = godotenv.Load()
	return &ClientConfig{
		APIBaseURL:      strings.TrimSuffix(getenvDefault("API_BASE_URL", "http://localhost:4000"), "/"),
		DataPath:        getenvDefault("DATA_PATH", "nclex-practice.db"),
		SessionLimit:    getenvInt("SESSION_LIMIT", 10),
		AdvanceDelay:    getDurationDefault("ADVANCE_DELAY", 500*time.Millisecond),
		ActivityTimeout: getDurationDefault("ACTIVITY_TIMEOUT", 5*time.Minute),
	}
}

// NormalizeMongoURI ensures TLS is enabled for hosts where it is required
// by appending ssl=true when the connection string does not set it.
func NormalizeMongoURI(uri string) string {
	if strings.Contains(strings.ToLower(uri), "ssl=true") {
		return uri
	}
	if strings.Contains(uri, "?") {
		return uri + "&ssl=true"
	}
	return uri + "?ssl=true"
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
