package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDispatchDB int    `mapstructure:"REDIS_DISPATCH_DB"`

	// Firebase configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Reminder pass scheduling.
	ReminderSchedule string `mapstructure:"REMINDER_SCHEDULE"`
	ScheduleTimezone string `mapstructure:"SCHEDULE_TIMEZONE"`
	RunTimeoutSec    int    `mapstructure:"RUN_TIMEOUT_SEC"`

	// Local wall-clock hours at which each reminder class fires.
	BillingHour    int `mapstructure:"BILLING_HOUR"`
	PaydayHour     int `mapstructure:"PAYDAY_HOUR"`
	MarketingHour  int `mapstructure:"MARKETING_HOUR"`
	EngagementHour int `mapstructure:"ENGAGEMENT_HOUR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "subwatch")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DISPATCH_DB", 0)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("REMINDER_SCHEDULE", "0 * * * *")
	viper.SetDefault("SCHEDULE_TIMEZONE", "UTC")
	viper.SetDefault("RUN_TIMEOUT_SEC", 540)
	viper.SetDefault("BILLING_HOUR", 10)
	viper.SetDefault("PAYDAY_HOUR", 9)
	viper.SetDefault("MARKETING_HOUR", 13)
	viper.SetDefault("ENGAGEMENT_HOUR", 20)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
