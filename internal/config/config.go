package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MaxThinkDelay keeps a bot reply well inside the REST server's write timeout.
const MaxThinkDelay = 5 * time.Second

var ErrThinkDelayTooLong = errors.New("bot think-delay is too long")

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"SLIDE_LOG_LEVEL" env-default:"info"`
	LogFormat         string        `yaml:"log-format" env:"SLIDE_LOG_FORMAT" env-default:"json"`
	HTTPPort          string        `yaml:"http-port" env:"SLIDE_HTTP_PORT" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env:"SLIDE_SOCKET_PORT" env-default:"9091"`
	Redis             Redis         `yaml:"redis"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SLIDE_SQLITE_PATH" env-default:"slide.db"`
	Bot               Bot           `yaml:"bot"`
	GameTTL           time.Duration `yaml:"game-ttl" env:"SLIDE_GAME_TTL" env-default:"24h"`
}

type Redis struct {
	Host     string `yaml:"host" env:"SLIDE_REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"SLIDE_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"SLIDE_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"SLIDE_REDIS_DB" env-default:"0"`
}

type Bot struct {
	// Strategy is "parity" or "heuristic".
	Strategy string `yaml:"strategy" env:"SLIDE_BOT_STRATEGY" env-default:"parity"`
	// Seed makes bot moves reproducible when non-zero.
	Seed       int64         `yaml:"seed" env:"SLIDE_BOT_SEED" env-default:"0"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"SLIDE_BOT_THINK_DELAY" env-default:"0s"`
}

// Load - reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnv - builds the config from defaults and environment only.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	if that.Bot.ThinkDelay < 0 || that.Bot.ThinkDelay > MaxThinkDelay {
		return fmt.Errorf("%w: %s, allowed 0s to %s", ErrThinkDelayTooLong, that.Bot.ThinkDelay, MaxThinkDelay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
