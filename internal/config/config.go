package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the service reads from the environment. Upstream
// URLs are optional in local runs; routes whose provider is unconfigured
// respond 503 instead of failing startup.
type Config struct {
	ServiceName string
	Port        string

	// Upstream providers.
	AvailabilityURL string
	AssessorURL     string
	OTPBaseURL      string
	OTPAPIKey       string
	BotVerifyURL    string
	BotVerifyKey    string
	TransitURL      string
	GeocodeURL      string
	GeocodeAPIKey   string

	// Payments.
	StripeSecretKey   string
	PaymentSuccessURL string
	PaymentCancelURL  string
	PaymentCurrency   string

	// Infrastructure.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	DBMaxConns    int
	DBMinConns    int
	KafkaBrokers  string
	KafkaTopic    string

	// Booking window.
	OpenHour  int
	CloseHour int
	Timezone  string

	// HTTP server guards.
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitFailOpen  bool
	RequestTimeout     time.Duration
	BodyLimitBytes     int64
}

func Load() (Config, error) {
	port, err := Port("PORT", "8080")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: String("SERVICE_NAME", "assessment-api"),
		Port:        port,

		AvailabilityURL: String("AVAILABILITY_URL", ""),
		AssessorURL:     String("ASSESSOR_URL", ""),
		OTPBaseURL:      String("OTP_BASE_URL", ""),
		OTPAPIKey:       String("OTP_API_KEY", ""),
		BotVerifyURL:    String("BOT_VERIFY_URL", ""),
		BotVerifyKey:    String("BOT_VERIFY_SECRET", ""),
		TransitURL:      String("TRANSIT_URL", ""),
		GeocodeURL:      String("GEOCODE_URL", ""),
		GeocodeAPIKey:   String("GEOCODE_API_KEY", ""),

		StripeSecretKey:   String("STRIPE_SECRET_KEY", ""),
		PaymentSuccessURL: String("PAYMENT_SUCCESS_URL", ""),
		PaymentCancelURL:  String("PAYMENT_CANCEL_URL", ""),
		PaymentCurrency:   String("PAYMENT_CURRENCY", "thb"),

		RedisAddr:     String("REDIS_ADDR", ""),
		RedisPassword: String("REDIS_PASSWORD", ""),
		RedisDB:       Int("REDIS_DB", 0),
		DatabaseURL:   String("DATABASE_URL", ""),
		DBMaxConns:    Int("DB_MAX_CONNS", 0),
		DBMinConns:    Int("DB_MIN_CONNS", 0),
		KafkaBrokers:  String("KAFKA_BROKERS", ""),
		KafkaTopic:    String("KAFKA_TOPIC", "storefront.events.v1"),

		OpenHour:  Int("BOOKING_OPEN_HOUR", 10),
		CloseHour: Int("BOOKING_CLOSE_HOUR", 20),
		Timezone:  String("BOOKING_TIMEZONE", "Asia/Bangkok"),

		CORSAllowedOrigins: List(String("CORS_ALLOWED_ORIGINS", "")),
		RateLimitPerMinute: Int("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitFailOpen:  Bool("RATE_LIMIT_FAIL_OPEN", true),
		// Must exceed the availability fetch budget (8s primary + one retry).
		RequestTimeout:     time.Duration(Int("REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		BodyLimitBytes:     int64(Int("REQUEST_BODY_LIMIT_BYTES", 1<<20)),
	}

	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.OpenHour >= cfg.CloseHour {
		return Config{}, fmt.Errorf("invalid booking window %d-%d", cfg.OpenHour, cfg.CloseHour)
	}
	return cfg, nil
}

func String(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func RequiredString(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func Int(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func Bool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func Port(key, fallback string) (string, error) {
	v := String(key, fallback)
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 || p > 65535 {
		return "", fmt.Errorf("%s must be a valid TCP port (got %q)", key, v)
	}
	return v, nil
}

func List(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
