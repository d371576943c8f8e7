package config

import (
	"net"
	"strconv"
	"strings"
)

// Default connection target used when DB_HOST or DB_PORT are absent.
const (
	DefaultHost = "localhost"
	DefaultPort = 5432
)

// Config holds the database connection parameters for one run.
// It is built once by Load and passed around by value.
type Config struct {
	Database string
	User     string
	Password string
	Host     string
	Port     int
	SSLMode  string
}

// DSN builds a keyword/value connection string from the configuration.
// Host may be a hostname, an IP address or a Unix socket directory.
// Empty values are left out so the driver applies its own defaults.
func (c Config) DSN() string {
	settings := []struct{ key, value string }{
		{"host", c.Host},
		{"port", strconv.Itoa(c.Port)},
		{"dbname", c.Database},
		{"user", c.User},
		{"password", c.Password},
		{"sslmode", c.SSLMode},
	}

	parts := make([]string, 0, len(settings))
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		parts = append(parts, s.key+"="+quoteValue(s.value))
	}
	return strings.Join(parts, " ")
}

// DisplayString returns a human-readable summary of the target without the password.
func (c Config) DisplayString() string {
	s := net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) + "/" + c.Database
	if c.User != "" {
		s = c.User + "@" + s
	}
	return s
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteValue(v string) string {
	if !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}
	return "'" + valueEscaper.Replace(v) + "'"
}
