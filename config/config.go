package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Scheduling configuration.
	SnapshotTTLSeconds     int    `mapstructure:"SNAPSHOT_TTL_SECONDS"`
	BufferMinutes          int    `mapstructure:"BUFFER_MINUTES"`
	DefaultDurationMinutes int    `mapstructure:"DEFAULT_DURATION_MINUTES"`
	DurationPresets        string `mapstructure:"DURATION_PRESETS"`
	StrictRecurringBounds  bool   `mapstructure:"STRICT_RECURRING_BOUNDS"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Scheduling is the parsed scheduling section of Config.
type Scheduling struct {
	BufferMinutes         int   `json:"bufferMinutes"`
	DefaultDuration       int   `json:"defaultDuration"`
	DurationPresets       []int `json:"durationPresets"`
	StrictRecurringBounds bool  `json:"strictRecurringBounds"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "tutorhub")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("SNAPSHOT_TTL_SECONDS", 30)
	v.SetDefault("BUFFER_MINUTES", 15)
	v.SetDefault("DEFAULT_DURATION_MINUTES", 60)
	v.SetDefault("DURATION_PRESETS", "35,60,90,120")
	v.SetDefault("STRICT_RECURRING_BOUNDS", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Validate rejects settings the scheduling engine cannot work with.
func (c Config) Validate() error {
	if c.BufferMinutes < 0 {
		return fmt.Errorf("BUFFER_MINUTES must not be negative, got %d", c.BufferMinutes)
	}
	if c.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("DEFAULT_DURATION_MINUTES must be positive, got %d", c.DefaultDurationMinutes)
	}
	if c.SnapshotTTLSeconds < 0 {
		return fmt.Errorf("SNAPSHOT_TTL_SECONDS must not be negative, got %d", c.SnapshotTTLSeconds)
	}
	if _, err := parsePresets(c.DurationPresets); err != nil {
		return err
	}
	return nil
}

// SchedulingDefaults returns the buffer, durations and recurring-bounds policy.
func (c Config) SchedulingDefaults() Scheduling {
	presets, err := parsePresets(c.DurationPresets)
	if err != nil || len(presets) == 0 {
		presets = []int{c.DefaultDurationMinutes}
	}
	return Scheduling{
		BufferMinutes:         c.BufferMinutes,
		DefaultDuration:       c.DefaultDurationMinutes,
		DurationPresets:       presets,
		StrictRecurringBounds: c.StrictRecurringBounds,
	}
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parsePresets(raw string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DURATION_PRESETS: %q is not a positive number of minutes", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
