package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type App struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	StoreDriver     string        `envconfig:"STORE_DRIVER" default:"postgres"`
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Env             string        `envconfig:"APP_ENV" default:"dev"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// RabbitMQ is optional; without it domain events are dropped.
	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"marketplace.events"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func (c App) Production() bool { return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod") }

// Load reads an optional .env file, then the process environment.
func Load(files ...string) (App, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, err
	}
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	return c, c.validate()
}

func (c App) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return errors.New("STORE_DRIVER must be postgres or memory")
	}
	return nil
}
