package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"hush-backend/internal/core/domain"
	"hush-backend/internal/core/privacy"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Privacy  privacy.Config
	Model    ModelConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SeedMockData    bool
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type ModelConfig struct {
	InitialWeights domain.FeatureVector
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from defaults, the environment and, when
// HUSH_CONFIG_FILE is set, a config file. Environment wins over the file.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "hush.db")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "hush")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "hush")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DATABASE_SEED_MOCK_DATA", true)
	v.SetDefault("PRIVACY_NOISE_SCALE", 0.1)
	v.SetDefault("PRIVACY_EPSILON", 0.0)
	v.SetDefault("PRIVACY_SENSITIVITY", 1.0)
	v.SetDefault("PRIVACY_CLIP_BOUND", 0.0)
	v.SetDefault("PRIVACY_NOISE_SEED", 0)
	v.SetDefault("MODEL_INITIAL_TEXT", domain.DefaultInitialWeights.Text)
	v.SetDefault("MODEL_INITIAL_TYPING", domain.DefaultInitialWeights.Typing)
	v.SetDefault("MODEL_INITIAL_VOICE", domain.DefaultInitialWeights.Voice)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
	v.SetDefault("METRICS_ENABLED", true)

	// Env
	v.AutomaticEnv()

	if file := v.GetString("HUSH_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	shutdown, err := time.ParseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdown = 10 * time.Second
	}
	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 5 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdown,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:            v.GetString("DATABASE_PATH"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
			SeedMockData:    v.GetBool("DATABASE_SEED_MOCK_DATA"),
		},
		Privacy: privacy.Config{
			Scale:       v.GetFloat64("PRIVACY_NOISE_SCALE"),
			Epsilon:     v.GetFloat64("PRIVACY_EPSILON"),
			Sensitivity: v.GetFloat64("PRIVACY_SENSITIVITY"),
			ClipBound:   v.GetFloat64("PRIVACY_CLIP_BOUND"),
			Seed:        v.GetUint64("PRIVACY_NOISE_SEED"),
		},
		Model: ModelConfig{
			InitialWeights: domain.FeatureVector{
				Text:   v.GetFloat64("MODEL_INITIAL_TEXT"),
				Typing: v.GetFloat64("MODEL_INITIAL_TYPING"),
				Voice:  v.GetFloat64("MODEL_INITIAL_VOICE"),
			},
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, c.Database.Driver)
	}
	if !c.Model.InitialWeights.IsFinite() {
		return domain.ErrInvalidInitialWeights
	}
	if math.IsNaN(c.Privacy.NoiseScale()) || math.IsInf(c.Privacy.NoiseScale(), 0) {
		return fmt.Errorf("privacy noise scale must be finite")
	}
	if b := c.Privacy.ClipBound; math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidClipBound, b)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
