package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// clearEnv unsets every DB_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		name := "DB_" + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Database: "testdb",
		User:     "postgres",
		Password: "secret",
		Host:     "localhost",
		Port:     5432,
	}, cfg)
}

func TestLoad_DefaultsMatchExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DB_NAME", "testdb")

	defaulted, err := Load()
	require.NoError(t, err)

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	explicit, err := Load()
	require.NoError(t, err)

	assert.Equal(t, explicit, defaulted)
	assert.Equal(t, explicit.DSN(), defaulted.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, "require", cfg.SSLMode)
}

func TestLoad_MissingCredentialsPassThrough(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Database)
	assert.Empty(t, cfg.User)
	assert.Empty(t, cfg.Password)
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{name: "letters", port: "abc"},
		{name: "float", port: "5432.5"},
		{name: "hex", port: "0x1538"},
		{name: "zero", port: "0"},
		{name: "negative", port: "-1"},
		{name: "too large", port: "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv("DB_PORT", tt.port)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid DB_PORT")
		})
	}
}

func TestLoad_PortBounds(t *testing.T) {
	for _, port := range []string{"1", "65535"} {
		t.Run(port, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv("DB_PORT", port)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Contains(t, cfg.DSN(), "port="+port)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	content := "DB_NAME=fromfile\nDB_USER=fileuser\nDB_PASSWORD=filepass\nDB_PORT=15432\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	// Already-set variables win over the file.
	t.Setenv("DB_USER", "envuser")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.Database)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "filepass", cfg.Password)
	assert.Equal(t, 15432, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestLoad_ExplicitEnvFileMissing(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_KeyringFallback(t *testing.T) {
	keyring.MockInit()

	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_KEYRING_SERVICE", "datafetch-test")

	require.NoError(t, keyring.Set("datafetch-test", "postgres", "from-keyring"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", cfg.Password)

	// An explicit password takes precedence.
	t.Setenv("DB_PASSWORD", "from-env")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Password)
}

func TestLoad_KeyringEntryMissing(t *testing.T) {
	keyring.MockInit()

	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DB_USER", "nobody")
	t.Setenv("DB_KEYRING_SERVICE", "datafetch-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Password)
}
