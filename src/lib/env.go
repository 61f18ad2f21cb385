package lib

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	Port          string
	AppEnv        string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	CloudinaryURL string
	CORSOrigins   string
}

// LoadConfig reads .env if present and falls back to defaults for anything unset
func LoadConfig() Config {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "3000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "mednest"),
		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret-key"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
