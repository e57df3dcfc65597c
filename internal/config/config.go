package config

import (
	"errors"
	"strings"
	"time"

	"feed/internal/config/hook"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const insecureSessionSecret = "secret_key_change_me"

type Config struct {
	Server struct {
		Port            uint16
		Mode            string
		ShutdownTimeout time.Duration
	}

	Database struct {
		URL string
	}

	Session struct {
		Secret string
		Name   string
	}

	Logging struct {
		Level zapcore.Level
	}

	Render struct {
		CacheSize int
		CacheTTL  time.Duration
	}
}

// InsecureSession reports whether the built-in development secret is in use.
func (c *Config) InsecureSession() bool {
	return c.Session.Secret == insecureSessionSecret
}

// Read loads .env (if any), then config.yaml (if any), then the environment.
func Read() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	if err := configureEnv(v); err != nil {
		return nil, err
	}
	configureLocation(v)
	return readUnmarshalConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdowntimeout", "10s")
	v.SetDefault("database.url", "host=localhost user=postgres password=postgres dbname=feed port=5432 sslmode=disable")
	v.SetDefault("session.secret", insecureSessionSecret)
	v.SetDefault("session.name", "feed_session")
	v.SetDefault("logging.level", "info")
	v.SetDefault("render.cachesize", 500)
	v.SetDefault("render.cachettl", "10m")
}

func configureEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("conf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Plain names used by hosting platforms.
	bindings := map[string]string{
		"server.port":    "PORT",
		"server.mode":    "GIN_MODE",
		"database.url":   "DATABASE_URL",
		"session.secret": "SESSION_SECRET",
		"logging.level":  "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "CONF_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return err
		}
	}
	return nil
}

func configureLocation(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func readUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		hook.Level(), mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, err
	}
	return c, nil
}
