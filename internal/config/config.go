package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	APIPrefix             string
	DatabaseDriver        string
	DatabaseDSN           string
	JWTSecret             string
	AdminEmails           []string
	AllowedOrigins        []string
	RabbitMQURL           string
	RedisURL              string
	UploadDir             string
	MaxUploadSize         int64
	CloudinaryURL         string
	ShippingFreeThreshold int64
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Lanari Candle")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "local.db")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("ADMIN_EMAILS", "")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("UPLOAD_DIR", "static/uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("SHIPPING_FREE_THRESHOLD", 20000)
}

// Load reads .env (when present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:               v.GetString("APP_NAME"),
		AppEnv:                v.GetString("APP_ENV"),
		AppPort:               v.GetString("APP_PORT"),
		APIPrefix:             v.GetString("API_PREFIX"),
		DatabaseDriver:        v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:           v.GetString("DATABASE_DSN"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		AdminEmails:           splitList(v.GetString("ADMIN_EMAILS")),
		AllowedOrigins:        splitList(v.GetString("ALLOWED_ORIGINS")),
		RabbitMQURL:           v.GetString("RABBITMQ_URL"),
		RedisURL:              v.GetString("REDIS_URL"),
		UploadDir:             v.GetString("UPLOAD_DIR"),
		MaxUploadSize:         v.GetInt64("MAX_UPLOAD_SIZE"),
		CloudinaryURL:         v.GetString("CLOUDINARY_URL"),
		ShippingFreeThreshold: v.GetInt64("SHIPPING_FREE_THRESHOLD"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
