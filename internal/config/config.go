package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-yaml/yaml"
)

const (
	DefaultPostgresDsn = "host=localhost user=postgres password=postgres dbname=shoplist port=5432 sslmode=disable"
	DefaultPort        = 3001
	DefaultStaticDir   = "dist"
)

type Config struct {
	Server Server `yaml:"server"`
}

// Server fields are overridable from the environment. Unset variables leave
// the file or default value in place.
type Server struct {
	PostgresDsn   string `yaml:"postgresDsn" env:"DATABASE_URL"`
	Port          int    `yaml:"port" env:"PORT"`
	RedisAddr     string `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redisPassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redisDB" env:"REDIS_DB"`
	EnableTrace   bool   `yaml:"enableTrace" env:"ENABLE_TRACE"`
	TraceEndpoint string `yaml:"traceEndpoint" env:"TRACE_ENDPOINT"`
	StaticDir     string `yaml:"staticDir" env:"STATIC_DIR"`
}

func Default() Config {
	return Config{
		Server: Server{
			PostgresDsn: DefaultPostgresDsn,
			Port:        DefaultPort,
			StaticDir:   DefaultStaticDir,
		},
	}
}

// Load layers defaults, the optional YAML file at path, and the environment.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := env.Parse(&config.Server); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return Config{}, fmt.Errorf("port must be between 1 and 65535, got %d", config.Server.Port)
	}

	return config, nil
}

func (s Server) ListenAddr() string {
	return fmt.Sprintf(":%d", s.Port)
}
