package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Chime     ChimeConfig
	Services  ServicesConfig
	Meetings  MeetingsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

// ChimeConfig holds credentials and regions for the Chime SDK Meetings API.
// If AccessKeyID is empty the default AWS credential chain is used.
type ChimeConfig struct {
	Region          string
	MediaRegion     string
	AccessKeyID     string
	SecretAccessKey string
}

// ServicesConfig holds the base URLs of sibling services, used by the
// gateway and by the project service's meeting client.
type ServicesConfig struct {
	AuthURL    string
	TaskURL    string
	MeetingURL string
}

// MeetingsConfig controls the stale-meeting reaper.
type MeetingsConfig struct {
	MaxAgeMinutes       int
	ReapIntervalMinutes int
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (j *JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDevelopment() bool {
	return s.Env == "development"
}

func (m *MeetingsConfig) MaxAge() time.Duration {
	return time.Duration(m.MaxAgeMinutes) * time.Minute
}

func (m *MeetingsConfig) ReapInterval() time.Duration {
	return time.Duration(m.ReapIntervalMinutes) * time.Minute
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "teamhub")
	v.SetDefault("DATABASE_PASSWORD", "teamhub_secret")
	v.SetDefault("DATABASE_NAME", "teamhub")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_ISSUER", "teamhub")
	v.SetDefault("JWT_EXPIRY_HOURS", 1)
	v.SetDefault("CHIME_REGION", "us-east-1")
	v.SetDefault("CHIME_MEDIA_REGION", "us-east-1")
	v.SetDefault("SERVICE_AUTH_URL", "http://localhost:8081")
	v.SetDefault("SERVICE_TASK_URL", "http://localhost:8082")
	v.SetDefault("SERVICE_MEETING_URL", "http://localhost:8083")
	v.SetDefault("MEETING_MAX_AGE_MINUTES", 480)
	v.SetDefault("MEETING_REAP_INTERVAL_MINUTES", 15)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	// Load from .env file if present
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
			Env:  v.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetInt("DATABASE_PORT"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			Name:     v.GetString("DATABASE_NAME"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Chime: ChimeConfig{
			Region:          v.GetString("CHIME_REGION"),
			MediaRegion:     v.GetString("CHIME_MEDIA_REGION"),
			AccessKeyID:     v.GetString("CHIME_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("CHIME_SECRET_ACCESS_KEY"),
		},
		Services: ServicesConfig{
			AuthURL:    v.GetString("SERVICE_AUTH_URL"),
			TaskURL:    v.GetString("SERVICE_TASK_URL"),
			MeetingURL: v.GetString("SERVICE_MEETING_URL"),
		},
		Meetings: MeetingsConfig{
			MaxAgeMinutes:       v.GetInt("MEETING_MAX_AGE_MINUTES"),
			ReapIntervalMinutes: v.GetInt("MEETING_REAP_INTERVAL_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}
