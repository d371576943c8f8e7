package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	envPrefix      = "DB"
	defaultEnvFile = ".env"

	minPort = 1
	maxPort = 65535
)

// Keys read from the environment, each prefixed with DB_.
var envKeys = []string{"name", "user", "password", "host", "port", "sslmode", "keyring_service"}

// Load reads the connection parameters from the process environment.
//
// Variables from the given env files (or ./.env when none are given) are merged
// first without overriding anything already set. A missing ./.env is ignored;
// a missing explicit file is an error. DB_NAME, DB_USER and DB_PASSWORD are not
// validated: empty values reach the driver unchanged.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)

	port, err := parsePort(v.GetString("port"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Database: v.GetString("name"),
		User:     v.GetString("user"),
		Password: v.GetString("password"),
		Host:     v.GetString("host"),
		Port:     port,
		SSLMode:  v.GetString("sslmode"),
	}

	if cfg.Password == "" {
		if service := v.GetString("keyring_service"); service != "" {
			pw, err := passwordFromKeyring(service, cfg.User)
			if err != nil {
				return Config{}, err
			}
			cfg.Password = pw
		}
	}

	return cfg, nil
}

// parsePort accepts a decimal TCP port in 1..65535.
func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid DB_PORT %q: %w", raw, err)
	}
	if port < minPort || port > maxPort {
		return 0, fmt.Errorf("invalid DB_PORT %q: out of range %d-%d", raw, minPort, maxPort)
	}
	return port, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(defaultEnvFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", defaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// passwordFromKeyring returns an empty password when no entry exists.
func passwordFromKeyring(service, user string) (string, error) {
	pw, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring %s/%s: %w", service, user, err)
	}
	return pw, nil
}
