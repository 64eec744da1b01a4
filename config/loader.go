package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables as raw strings.
// Components handle validation and defaults during initialization.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	// Missing .env is fine - system env vars still apply
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         os.Getenv("SERVER_PORT"),
			Environment:  os.Getenv("SERVER_ENV"),
			ReadTimeout:  os.Getenv("SERVER_READ_TIMEOUT"),
			WriteTimeout: os.Getenv("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Expiration: os.Getenv("JWT_EXPIRATION"),
			CookieName: os.Getenv("JWT_COOKIE_NAME"),
		},
		Worker: WorkerConfig{
			RankInterval: os.Getenv("WORKER_RANK_INTERVAL"),
		},
		Logging: LoggingConfig{
			Level:       os.Getenv("LOG_LEVEL"),
			Format:      os.Getenv("LOG_FORMAT"),
			ServiceName: os.Getenv("SERVICE_NAME"),
		},
		RateLimit: RateLimitConfig{
			RedisURL: os.Getenv("RATELIMIT_REDIS_URL"),
			Requests: os.Getenv("RATELIMIT_REQUESTS"),
			Window:   os.Getenv("RATELIMIT_WINDOW"),
		},
		Media: MediaConfig{
			MaxSize: os.Getenv("MEDIA_MAX_SIZE"),
		},
	}
}
