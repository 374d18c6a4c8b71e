package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; a .env file in the working directory is read
// first when present.
type Config struct {
	Env      string // application environment (dev/prod)
	Port     string // HTTP port to listen on
	LogLevel string // zap level: debug, info, warn, error

	DBDriver string // sqlite | mysql | postgres
	DBPath   string // sqlite file path
	DBUser   string // hosted database user
	DBPass   string // hosted database password (optional)
	DBHost   string // hosted database host
	DBPort   string // hosted database port
	DBName   string // hosted database name
	DBSeed   bool   // insert the default catalog into empty tables

	JWTSecret         string // secret used to sign admin tokens
	AccessTTLMin      int    // admin token lifetime in minutes
	AdminUsername     string // admin login name
	AdminPasswordHash string // bcrypt hash of the admin password

	AMQPURL        string // broker for booking events; empty disables publishing
	BookingLogPath string // file the booking consumer appends to

	TelegramToken  string // bot token; empty disables chat delivery
	TelegramChatID int64  // chat receiving share messages

	StoreTimeout time.Duration // deadline for a single persistence call
}

// Load reads configuration values from the environment. JWT_SECRET is
// required; a missing value stops the process.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:      envStr("APP_ENV", "dev"),
		Port:     envStr("APP_PORT", "8080"),
		LogLevel: envStr("LOG_LEVEL", "info"),

		DBDriver: strings.ToLower(envStr("DB_DRIVER", "sqlite")),
		DBPath:   envStr("DB_PATH", "data/badminton.db"),
		DBUser:   envStr("DB_USER", "root"),
		DBPass:   os.Getenv("DB_PASS"),
		DBHost:   envStr("DB_HOST", "localhost"),
		DBPort:   envStr("DB_PORT", "3306"),
		DBName:   envStr("DB_NAME", "badminton"),
		DBSeed:   envBool("DB_SEED", true),

		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      envInt("ACCESS_TOKEN_TTL_MIN", 120),
		AdminUsername:     envStr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		AMQPURL:        firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		BookingLogPath: envStr("BOOKING_LOG_PATH", "logs/booking.log"),

		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: envInt64("TELEGRAM_CHAT_ID", 0),

		StoreTimeout: envDur("STORE_TIMEOUT", 5*time.Second),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envInt64(k string, d int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
