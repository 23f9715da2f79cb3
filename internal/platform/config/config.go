package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTSecret    []byte
	JWTAlgorithm string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SweepInterval    time.Duration
	SweepLockKey     string
	SweepLockTTLSecs int
}

// Load reads .env (when present) and the environment, returning a fully
// populated Config. The config is handed to components explicitly; there is
// no package-level instance.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:      getEnv("API_PORT", "8080"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
		AccessTTL:    time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		RefreshTTL:   time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 24)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "reviro_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SweepInterval:    time.Duration(getEnvAsInt("SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		SweepLockKey:     getEnv("SWEEP_LOCK_KEY", "refresh_token_sweep_lock"),
		SweepLockTTLSecs: getEnvAsInt("SWEEP_LOCK_TTL_SECONDS", 60),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
