package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Razorpay RazorpayConfig `yaml:"razorpay"`
	Sanity   SanityConfig   `yaml:"sanity"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT" envDefault:"3000"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database string `yaml:"database" env:"POSTGRES_DB"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host" env:"RABBITMQ_HOST"`
	Port     int    `yaml:"port" env:"RABBITMQ_PORT"`
	User     string `yaml:"user" env:"RABBITMQ_USER"`
	Password string `yaml:"password" env:"RABBITMQ_PASSWORD"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	KeySecret string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
	BaseURL   string `yaml:"base_url" env:"RAZORPAY_BASE_URL"`
}

type SanityConfig struct {
	ProjectID     string `yaml:"project_id" env:"SANITY_PROJECT_ID"`
	Dataset       string `yaml:"dataset" env:"SANITY_DATASET" envDefault:"production"`
	Token         string `yaml:"token" env:"SANITY_TOKEN"`
	APIVersion    string `yaml:"api_version" env:"SANITY_API_VERSION" envDefault:"2023-05-03"`
	WebhookSecret string `yaml:"webhook_secret" env:"SANITY_WEBHOOK_SECRET"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

// Load reads the yaml file at path, then overlays environment variables
// (a .env file is honored if present). Env always wins over yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// DSN builds the postgres connection string used by both the pgx pool and
// the goose migration runner.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

func (c *RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.User, c.Password, c.Host, c.Port)
}
