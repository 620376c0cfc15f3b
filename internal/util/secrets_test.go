package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSecrets(t *testing.T) {
	t.Run("file with env override", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("STOCKBUDDY_ENV", "test")
		t.Setenv("STOCKBUDDY_DB_PASSWORD", "from-env")

		err := os.WriteFile(filepath.Join(dir, "secrets-test.json"), []byte(`{
			"port": 4000,
			"db": {"host": "localhost", "user": "postgres", "port": "5440", "password": "postgres", "database": "postgres_test"},
			"simulation": {"baseUrl": "http://localhost:8000"}
		}`), 0o600)
		require.NoError(t, err)

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, 4000, secrets.Port)
		require.Equal(t, "from-env", secrets.Db.Password)
		require.True(t, secrets.Db.Enabled())
		require.Equal(t, "http://localhost:8000", secrets.Simulation.BaseUrl)
		require.Equal(t, uint(3), secrets.Simulation.MaxTries)
		require.Equal(
			t,
			"host=localhost port=5440 user=postgres password=from-env dbname=postgres_test sslmode=disable",
			secrets.Db.ToConnectionStr(),
		)
	})

	t.Run("env only", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STOCKBUDDY_ENV", "dev")
		t.Setenv("STOCKBUDDY_SIMULATION_BASEURL", "http://sim")

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "http://sim", secrets.Simulation.BaseUrl)
		require.Equal(t, 3009, secrets.Port)
		require.False(t, secrets.Db.Enabled())
	})

	t.Run("missing simulation url", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STOCKBUDDY_ENV", "dev")

		_, err := LoadSecrets()
		require.Error(t, err)
	})
}
