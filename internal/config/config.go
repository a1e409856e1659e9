package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `json:"env"`
	Http        HttpConfig        `json:"http"`
	EarthEngine EarthEngineConfig `json:"earth_engine"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type EarthEngineConfig struct {
	BaseURL         string        `json:"base_url"`
	Project         string        `json:"project"`
	CredentialsFile string        `json:"credentials_file,omitempty"`
	RequestTimeout  time.Duration `json:"request_timeout"`
	ReduceScale     int           `json:"reduce_scale"` // meters per pixel for region reductions
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8000"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		EarthEngine: EarthEngineConfig{
			BaseURL:         getEnv("EE_BASE_URL", "https://earthengine.googleapis.com"),
			Project:         getEnv("EE_PROJECT", ""),
			CredentialsFile: getEnv("EE_CREDENTIALS_FILE", ""),
			RequestTimeout:  getEnvDuration("EE_REQUEST_TIMEOUT", 30*time.Second),
			ReduceScale:     getEnvInt("EE_REDUCE_SCALE", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("ee_base_url", cfg.EarthEngine.BaseURL),
		slog.String("ee_project", cfg.EarthEngine.Project),
		slog.Bool("ee_credentials_present", cfg.EarthEngine.CredentialsFile != ""))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8000'")
	}

	if c.EarthEngine.BaseURL == "" {
		return errors.New("EE_BASE_URL required")
	}

	if c.EarthEngine.CredentialsFile != "" && c.EarthEngine.Project == "" {
		return errors.New("EE_PROJECT required when EE_CREDENTIALS_FILE is set")
	}

	if c.EarthEngine.ReduceScale <= 0 {
		return errors.New("EE_REDUCE_SCALE must be positive")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
