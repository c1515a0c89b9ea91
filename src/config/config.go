package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumElevators = 4
	GroundFloor  = 1
	TickInterval = 10 * time.Second
	ListenAddr   = ":8080"
	LogLevel     = "info"
)

// Environment keys, applied on top of the YAML file.
const (
	EnvCount        = "ELEVATOR_COUNT"
	EnvGroundFloor  = "ELEVATOR_GROUND_FLOOR"
	EnvTickInterval = "ELEVATOR_TICK_INTERVAL"
	EnvListenAddr   = "ELEVATOR_LISTEN_ADDR"
	EnvLogLevel     = "ELEVATOR_LOG_LEVEL"
	EnvLogFile      = "ELEVATOR_LOG_FILE"
)

type Config struct {
	NumElevators int           `yaml:"numElevators"`
	GroundFloor  int           `yaml:"groundFloor"`
	TickInterval time.Duration `yaml:"tickInterval"`
	ListenAddr   string        `yaml:"listenAddr"`
	LogLevel     string        `yaml:"logLevel"`
	LogFile      string        `yaml:"logFile"`
}

func Default() Config {
	return Config{
		NumElevators: NumElevators,
		GroundFloor:  GroundFloor,
		TickInterval: TickInterval,
		ListenAddr:   ListenAddr,
		LogLevel:     LogLevel,
	}
}

// Load builds a Config from the defaults, then the YAML file at path, then the .env file at envPath,
// then the process environment. Empty paths are skipped.
func Load(path, envPath string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config %s: %w", path, err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	env := map[string]string{}
	if envPath != "" {
		fileEnv, err := godotenv.Read(envPath)
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", envPath, err)
		}
		env = fileEnv
	}
	for _, key := range []string{EnvCount, EnvGroundFloor, EnvTickInterval, EnvListenAddr, EnvLogLevel, EnvLogFile} {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	slog.Debug("Config loaded", "config", cfg)
	return cfg, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if value, ok := env[EnvCount]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCount, err)
		}
		c.NumElevators = n
	}
	if value, ok := env[EnvGroundFloor]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGroundFloor, err)
		}
		c.GroundFloor = n
	}
	if value, ok := env[EnvTickInterval]; ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickInterval, err)
		}
		c.TickInterval = d
	}
	if value, ok := env[EnvListenAddr]; ok {
		c.ListenAddr = value
	}
	if value, ok := env[EnvLogLevel]; ok {
		c.LogLevel = value
	}
	if value, ok := env[EnvLogFile]; ok {
		c.LogFile = value
	}
	return nil
}

var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.NumElevators <= 0:
		return fmt.Errorf("%w: numElevators must be positive, got %d", ErrInvalid, c.NumElevators)
	case c.GroundFloor < 0:
		return fmt.Errorf("%w: groundFloor must not be negative, got %d", ErrInvalid, c.GroundFloor)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tickInterval must be positive, got %v", ErrInvalid, c.TickInterval)
	case c.ListenAddr == "":
		return fmt.Errorf("%w: listenAddr is empty", ErrInvalid)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: logLevel %q", ErrInvalid, c.LogLevel)
	}
	return nil
}
