package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cotizador.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	c, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, filepath.Join(home, ".cotizador", "cotizador.db"), c.DB.DSN)
	assert.Equal(t, "local", c.Owner)
	assert.Equal(t, "es-MX", c.Locale)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 3, c.Sequence.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, c.Sequence.Backoff)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, `
owner: from-file
locale: es-ES
db:
  driver: pgx
  dsn: postgres://localhost/cotizador
sequence:
  max_attempts: 5
  backoff: 10ms
`)

	c, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.Owner)
	assert.Equal(t, "es-ES", c.Locale)
	assert.Equal(t, "pgx", c.DB.Driver)
	assert.Equal(t, 5, c.Sequence.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, c.Sequence.Backoff)

	t.Setenv("COTIZADOR_OWNER", "from-env")
	t.Setenv("COTIZADOR_DB_DSN", "postgres://db/other")
	c, err = Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Owner)
	assert.Equal(t, "postgres://db/other", c.DB.DSN)

	v := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("owner", "", "")
	require.NoError(t, v.BindPFlag(KeyOwner, fs.Lookup("owner")))
	require.NoError(t, fs.Parse([]string{"--owner=from-flag"}))
	c, err = Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", c.Owner)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "db:\n  driver: mysql\nsequence:\n  max_attempts: 0\n")

	_, err := Load(New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `db.driver "mysql"`)
	assert.Contains(t, err.Error(), "sequence.max_attempts")
}
