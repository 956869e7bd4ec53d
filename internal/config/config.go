package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Twilio    TwilioConfig
	Delivery  DeliveryConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Env         string
	LogLevel    string
	ServiceName string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// TwilioConfig holds provider credentials and addressing
type TwilioConfig struct {
	AccountSID       string
	AuthToken        string
	WhatsAppNumber   string
	DefaultRecipient string
	BaseURL          string
	Timeout          time.Duration
}

// Configured reports whether credentials are present. A remote client may
// only be built when this is true.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

type DeliveryConfig struct {
	TrackingBaseURL string
}

type TelemetryConfig struct {
	OTLPEndpoint string
}

// Load creates a new Config from environment variables
func Load() *Config {
	return &Config{
		App: AppConfig{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			ServiceName: getEnv("SERVICE_NAME", "whatsapp-notifier"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", getEnv("SERVER_PORT", "5000")),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Twilio: TwilioConfig{
			AccountSID:       os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:        os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppNumber:   os.Getenv("TWILIO_WHATSAPP_NUMBER"),
			DefaultRecipient: os.Getenv("MY_WHATSAPP_NUMBER"),
			BaseURL:          getEnv("TWILIO_API_URL", "https://api.twilio.com"),
			Timeout:          getDurationEnv("TWILIO_TIMEOUT", 10*time.Second),
		},
		Delivery: DeliveryConfig{
			TrackingBaseURL: getEnv("TRACKING_BASE_URL", "https://client-global-express.web.app"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// bare integers are seconds
		if secs := getIntEnv(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
