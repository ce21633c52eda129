package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Chat assistant (OpenAI-compatible upstream)
	ChatAPIURL  string
	ChatAPIKey  string
	ChatModel   string
	ChatTimeout time.Duration

	// Reverse geocoding
	GeocodeAPIURL  string
	GeocodeTimeout time.Duration
	GeocodeLang    string

	// Geolocation acquisition
	GeoAccuracyThreshold float64
	GeoMaxWait           time.Duration

	// Redis (optional geocode cache)
	RedisAddr string
	RedisDB   int

	// Media storage
	MediaDir     string
	MediaBaseURL string

	// System log retention
	LogRetention time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "myville"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		// The default upstream is a keyless free tier; the Authorization
		// header still has to carry some text for it.
		ChatAPIURL:  getEnv("CHAT_API_URL", "https://text.pollinations.ai/openai"),
		ChatAPIKey:  getEnv("CHAT_API_KEY", "free-model"),
		ChatModel:   getEnv("CHAT_MODEL", "openai"),
		ChatTimeout: parseDuration(getEnv("CHAT_TIMEOUT", "60s"), 60*time.Second),

		GeocodeAPIURL:  getEnv("GEOCODE_API_URL", "https://nominatim.openstreetmap.org/reverse"),
		GeocodeTimeout: parseDuration(getEnv("GEOCODE_TIMEOUT", "10s"), 10*time.Second),
		GeocodeLang:    getEnv("GEOCODE_LANG", "ru"),

		GeoAccuracyThreshold: 50,
		GeoMaxWait:           parseDuration(getEnv("GEO_MAX_WAIT", "20s"), 20*time.Second),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   0,

		MediaDir:     getEnv("MEDIA_DIR", "./media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/media"),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 720*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
