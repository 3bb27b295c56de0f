package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Production bool

	Port    string
	OpsPort string

	MongoURI      string
	MongoDatabase string
	RabbitMQURL   string
	RedisAddr     string
	CacheTTL      time.Duration

	JWTKey     string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	MailgunDomain string
	MailgunAPIKey string
	MailFrom      string
	ResetURL      string
	ResetTTL      time.Duration

	ResetPerMinute     int
	RateLimitPerMinute int
	Timezone           *time.Location
}

func defaults(v *viper.Viper) {
	v.SetDefault("production", false)
	v.SetDefault("port", "6969")
	v.SetDefault("ops_port", "9090")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("mongo_database", "attendance")
	v.SetDefault("rabbitmq_connstring", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("jwt_key", "")
	v.SetDefault("jwt_issuer", "attendance-backend")
	v.SetDefault("access_ttl", 24*time.Hour)
	v.SetDefault("refresh_ttl", 24*30*time.Hour)
	v.SetDefault("mailgun_domain", "")
	v.SetDefault("mailgun_api_key", "")
	v.SetDefault("mail_from", "noreply@localhost")
	v.SetDefault("reset_url", "http://localhost:3000/reset-password")
	v.SetDefault("reset_ttl", time.Hour)
	v.SetDefault("reset_per_minute", 3)
	v.SetDefault("rate_limit_per_minute", 6000)
	v.SetDefault("timezone", "UTC")
}

// Load reads the environment, after loading envFile when it exists. Keys are
// the upper case field names, e.g. MONGO_URI.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config: loading %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	tz, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE: %w", err)
	}

	c := &Config{
		Production:         v.GetBool("production"),
		Port:               v.GetString("port"),
		OpsPort:            v.GetString("ops_port"),
		MongoURI:           v.GetString("mongo_uri"),
		MongoDatabase:      v.GetString("mongo_database"),
		RabbitMQURL:        v.GetString("rabbitmq_connstring"),
		RedisAddr:          v.GetString("redis_addr"),
		CacheTTL:           v.GetDuration("cache_ttl"),
		JWTKey:             v.GetString("jwt_key"),
		JWTIssuer:          v.GetString("jwt_issuer"),
		AccessTTL:          v.GetDuration("access_ttl"),
		RefreshTTL:         v.GetDuration("refresh_ttl"),
		MailgunDomain:      v.GetString("mailgun_domain"),
		MailgunAPIKey:      v.GetString("mailgun_api_key"),
		MailFrom:           v.GetString("mail_from"),
		ResetURL:           v.GetString("reset_url"),
		ResetTTL:           v.GetDuration("reset_ttl"),
		ResetPerMinute:     v.GetInt("reset_per_minute"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		Timezone:           tz,
	}

	if c.JWTKey == "" {
		if c.Production {
			return nil, fmt.Errorf("config: JWT_KEY is required in production")
		}
		c.JWTKey = "dev-key"
	}

	return c, nil
}
