package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string // postgres DSN, or "sqlite:<path>" for local runs
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	DisplayTimezone     *time.Location // calendar day for "today" and the greeting
	Currency            string         // ISO code used for display strings
	RecentLimit         int            // dashboard card size
	ExpoPushURL         string
	ExpoAccessToken     string
}

const (
	defaultPort        = "8080"
	defaultTimezone    = "Asia/Kolkata"
	defaultCurrency    = "INR"
	defaultRecentLimit = 5
	defaultExpoPushURL = "https://exp.host/--/api/v2/push/send"
)

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DISPLAY_TIMEZONE", defaultTimezone)
	v.SetDefault("CURRENCY", defaultCurrency)
	v.SetDefault("DASHBOARD_RECENT_LIMIT", defaultRecentLimit)
	v.SetDefault("EXPO_PUSH_URL", defaultExpoPushURL)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	tzName := strings.TrimSpace(v.GetString("DISPLAY_TIMEZONE"))
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", tzName, err)
	}
	limit := v.GetInt("DASHBOARD_RECENT_LIMIT")
	if limit < 0 {
		return nil, errors.New("DASHBOARD_RECENT_LIMIT must not be negative")
	}

	return &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(v.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		DisplayTimezone:     loc,
		Currency:            strings.ToUpper(v.GetString("CURRENCY")),
		RecentLimit:         limit,
		ExpoPushURL:         v.GetString("EXPO_PUSH_URL"),
		ExpoAccessToken:     v.GetString("EXPO_ACCESS_TOKEN"),
	}, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
