// Package config carrega a configuração do servidor a partir do ambiente.
//
// As variáveis usam o prefixo PATHCOUNT_ e "__" para aninhar:
// PATHCOUNT_SERVER__ADDR vira server.addr. Um `.env` no diretório atual é
// carregado antes, se existir.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// carrega o `.env` no ambiente do processo antes da leitura
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "PATHCOUNT_"

type Config struct {
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Logging LoggingConfig `koanf:"logging" validate:"required"`
	Metrics MetricsConfig `koanf:"metrics"`
	Stats   StatsConfig   `koanf:"stats"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr" validate:"required,hostname_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"min=0"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"min=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"min=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// MetricsConfig liga um listener separado do Prometheus. Addr vazio desliga.
type MetricsConfig struct {
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`
}

// StatsConfig controla o envio opcional dos eventos de chamada para o Redis.
type StatsConfig struct {
	Enabled       bool          `koanf:"enabled"`
	RedisAddr     string        `koanf:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"min=0"`
	Prefix        string        `koanf:"prefix"`
	TTL           time.Duration `koanf:"ttl" validate:"min=0"`
	Bucket        string        `koanf:"bucket" validate:"omitempty,oneof=minute none"`
	TrackKeys     bool          `koanf:"track_keys"`
}

// Default devolve a configuração usada quando nenhuma variável está definida.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              "127.0.0.1:3030",
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Stats: StatsConfig{
			Prefix: "pathcount:stats",
			TTL:    24 * time.Hour,
			Bucket: "minute",
		},
	}
}

// Load aplica as variáveis PATHCOUNT_* sobre os defaults e valida o resultado.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checa as regras que as tags não conseguem expressar.
func (c *Config) Validate() error {
	if c.Stats.Enabled && strings.TrimSpace(c.Stats.RedisAddr) == "" {
		return errors.New("stats.redis_addr is required when stats.enabled=true")
	}
	return nil
}

// envKey: PATHCOUNT_SERVER__ADDR -> server.addr
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}
