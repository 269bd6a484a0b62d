package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverRedis    = "redis"
	DriverFile     = "file"
)

type Config struct {
	ServerAddr  string
	GinMode     string
	CorsOrigins []string

	StoreDriver string
	SQLitePath  string
	DataFile    string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	CacheEnabled bool
	CacheTTL     time.Duration

	// AdminIDs is the static set of privileged caller ids.
	AdminIDs        map[string]struct{}
	LeaderboardSize int
	RequestTimeout  time.Duration

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// PgxURL is the connection string for the raw pgx pool backend.
func (c *Config) PgxURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// RedisConfigured reports whether a redis host was given at all.
func (c *Config) RedisConfigured() bool {
	return c.RedisAddr != ""
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CorsOrigins: ParseList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		SQLitePath:  getEnv("SQLITE_PATH", "growstat.db"),
		DataFile:    getEnv("DATA_FILE", "users_data.json"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CacheEnabled: getEnvAsBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 3600)) * time.Second,

		AdminIDs:        ParseAdminIDs(os.Getenv("ADMIN_IDS")),
		LeaderboardSize: getEnvAsInt("LEADERBOARD_SIZE", 10),
		RequestTimeout:  time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 5)) * time.Second,

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverPostgres, DriverPgx, DriverRedis, DriverFile:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverRedis && !c.RedisConfigured() {
		return fmt.Errorf("STORE_DRIVER=redis requires REDIS_HOST")
	}
	if c.LeaderboardSize < 1 {
		return fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", c.LeaderboardSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// ParseAdminIDs turns "1, 2,3" into a set. Blank entries are skipped.
func ParseAdminIDs(raw string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, id := range ParseList(raw) {
		ids[id] = struct{}{}
	}
	return ids
}

func ParseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
