package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=720h"`
	StoreDriver     string        `env:"STORE_DRIVER,     default=postgres"`
	BodyLimit       string        `env:"BODY_LIMIT,       default=10M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Upload   UploadConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,      default=localhost"`
	Port     int    `env:"DB_PORT,      default=5432"`
	User     string `env:"DB_USER,      default=postgres"`
	Password string `env:"DB_PASSWORD,  default=1234"`
	Name     string `env:"DB_NAME,      default=test"`
	SSLMode  string `env:"DB_SSLMODE,   default=disable"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=uploads/services"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES, default=2097152"`
}

// DSN renders the Postgres connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + strconv.Itoa(p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch cfg.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("load config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}
