package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	CORSOrigins []string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DatabaseURL points at Postgres, used for the contact message log.
	DatabaseURL string

	ClickHouse ClickHouseConfig
	Blog       BlogConfig
	SMTP       SMTPConfig
	Contact    ContactConfig
	LeetCode   LeetCodeConfig
}

type ClickHouseConfig struct {
	Host       string
	NativePort int
	DBName     string
	Username   string
	Password   string
}

// Enabled reports whether view analytics should be wired.
func (c ClickHouseConfig) Enabled() bool {
	return c.Host != "" && c.NativePort > 0 && c.DBName != ""
}

type BlogConfig struct {
	AdminPass     string
	AdminPassHash string
	JWTSecret     string
	TokenTTL      time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Secure   bool
	Timeout  time.Duration
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type ContactConfig struct {
	To          string
	RateLimit   int
	RateWindow  time.Duration
	SendTimeout time.Duration
}

type LeetCodeConfig struct {
	GraphQLURL      string
	DefaultUsername string
	CacheTTL        time.Duration
	Timeout         time.Duration
	TrailingDays    int
	GridColumns     int
	Timezone        string
}

// Load reads the process environment, after merging a .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getString("PORT", "4000"),
		GinMode:   getString("GIN_MODE", ""),
		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "json"),

		CORSOrigins: getList("CORS_ORIGIN", []string{"http://localhost:5173"}),

		MongoURI: getString("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getString("MONGODB_DB", "portfolio"),

		RedisAddr:     getString("REDIS_ADDR", ""),
		RedisPassword: getString("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		DatabaseURL: getString("DATABASE_URL", ""),

		ClickHouse: ClickHouseConfig{
			Host:       getString("CLICKHOUSE_HOST", ""),
			NativePort: getInt("CLICKHOUSE_NATIVE_PORT", 9000),
			DBName:     getString("CLICKHOUSE_DB_NAME", ""),
			Username:   getString("CLICKHOUSE_USERNAME", "default"),
			Password:   getString("CLICKHOUSE_PASSWORD", ""),
		},

		Blog: BlogConfig{
			AdminPass:     getString("BLOG_ADMIN_PASS", ""),
			AdminPassHash: getString("BLOG_ADMIN_PASS_HASH", ""),
			JWTSecret:     getString("BLOG_JWT_SECRET", "dev-secret"),
			TokenTTL:      getDuration("BLOG_TOKEN_TTL", 2*time.Hour),
		},

		SMTP: SMTPConfig{
			Host:     getString("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 587),
			Username: getString("SMTP_USER", ""),
			Password: getString("SMTP_PASS", ""),
			From:     getString("SMTP_FROM", ""),
			Secure:   getBool("SMTP_SECURE", false),
			Timeout:  getDuration("SMTP_TIMEOUT", 15*time.Second),
		},

		Contact: ContactConfig{
			To:          getString("TO_EMAIL", ""),
			RateLimit:   getInt("CONTACT_RATE_LIMIT", 5),
			RateWindow:  getDuration("CONTACT_RATE_WINDOW", time.Hour),
			SendTimeout: getDuration("CONTACT_SEND_TIMEOUT", 20*time.Second),
		},

		LeetCode: LeetCodeConfig{
			GraphQLURL:      getString("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
			DefaultUsername: getString("LEETCODE_USERNAME", ""),
			CacheTTL:        getDuration("LEETCODE_CACHE_TTL", 10*time.Minute),
			Timeout:         getDuration("LEETCODE_TIMEOUT", 8*time.Second),
			TrailingDays:    getInt("LEETCODE_TRAILING_DAYS", 72),
			GridColumns:     getInt("LEETCODE_GRID_COLUMNS", 53),
			Timezone:        getString("LEETCODE_TIMEZONE", "Local"),
		},
	}
}

func getString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
