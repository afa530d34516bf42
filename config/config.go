package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES          string
	APP_PORT             string
	JWTSecret            string
	JWTExpiration        int
	JWTRefreshExpiration int

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBTracing      bool

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite string

	LogLevel string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmails []string

	InventoryLinkEnabled bool
	JobCardCounterSeed   int
	SnowflakeNode        int

	allowedOrigins map[string]bool
)

// LoadConfig reads .env (if present) and fills the package variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")

	// JWT
	JWTSecret = getEnv("JWT_SECRET", "aftech_backoffice_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)
	JWTRefreshExpiration = getEnvAsInt("JWT_REFRESH_EXPIRATION", 604800)

	// Database
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "")
	DBName = getEnv("DB_NAME", "aftech")
	DBMaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	DBMaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	DBTracing = getEnvAsBool("DB_TRACING", false)

	// Cookie
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", true)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	LogLevel = getEnv("LOG_LEVEL", "info")

	// Redis
	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getEnvAsInt("REDIS_DB", 0)
	ReportCacheTTL = getEnvAsInt("REPORT_CACHE_TTL", 60)

	// Mail
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 587)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	SMTPFrom = getEnv("SMTP_FROM", SMTPUser)
	NotifyEmails = getEnvAsList("NOTIFY_EMAILS")

	InventoryLinkEnabled = getEnvAsBool("INVENTORY_LINK_ENABLED", false)
	JobCardCounterSeed = getEnvAsInt("JOBCARD_COUNTER_SEED", 0)
	SnowflakeNode = getEnvAsInt("SNOWFLAKE_NODE", 1)

	loadAllowedOrigins()
	setLogLevel(LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	origins := getEnvAsList("ALLOWED_ORIGINS")
	if len(origins) == 0 {
		allowedOrigins["http://127.0.0.1:3000"] = true
		allowedOrigins["http://localhost:3000"] = true
		return
	}
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

// GetTokenCookie wraps a refresh token. An empty token expires the cookie.
func GetTokenCookie(token string) *fiber.Cookie {
	expires := time.Now().Add(time.Duration(JWTRefreshExpiration) * time.Second)
	if token == "" {
		expires = time.Now().Add(-time.Hour)
	}
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}
