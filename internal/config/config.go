package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the gorm/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database URL form used by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// MediaConfig holds object-storage settings for listing images.
type MediaConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// KafkaConfig holds broker addresses and the consumer group prefix.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// ServiceConfig holds all configuration for the listing service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	JWTSecret   string
	UploadDir   string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
	MediaConfig MediaConfig
}

// Load reads configuration from the environment. A local .env file is loaded
// first when present; real environment variables win.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LISTING")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("UPLOAD_DIR", "/tmp/pawmart-uploads")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "listings")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "pawmart-")
	v.SetDefault("MEDIA_BUCKET", "pawmart-media")
	v.SetDefault("MEDIA_REGION", "ap-southeast-1")
	v.SetDefault("MEDIA_ENDPOINT", "")
	v.SetDefault("MEDIA_PUBLIC_BASE_URL", "")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("LISTING_JWT_SECRET is required")
	}

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:      port,
		AppEnv:    v.GetString("APP_ENV"),
		JWTSecret: secret,
		UploadDir: v.GetString("UPLOAD_DIR"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		MediaConfig: MediaConfig{
			Bucket:        v.GetString("MEDIA_BUCKET"),
			Region:        v.GetString("MEDIA_REGION"),
			Endpoint:      v.GetString("MEDIA_ENDPOINT"),
			PublicBaseURL: v.GetString("MEDIA_PUBLIC_BASE_URL"),
		},
	}, nil
}
