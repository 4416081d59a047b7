package config

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfa-khuongdv/docs-demo/internal/database"
)

const sampleConfig = `
backend: memory
log_level: debug
oauth:
  redirect_url: http://localhost:8085/callback
token_store:
  driver: mysql
  host: localhost
  port: "3306"
  user: demo
  password: secret
  database: docs
notifications:
  - name: team
    channel: slack
    enabled: true
    notify_on_success: true
    config:
      webhook_url: https://hooks.slack.com/services/x
`

func TestLoad_Defaults(t *testing.T) {
	config, err := Load(afero.NewMemMapFs(), "")

	require.NoError(t, err)
	assert.Equal(t, BackendGoogle, config.Backend)
	assert.Equal(t, hclog.Warn, config.Level())
	assert.Equal(t, "http://localhost", config.OAuth.RedirectURL)
	assert.Equal(t, database.DefaultConfig(), config.TokenStore)
	assert.Empty(t, config.Notifications)
}

func TestLoad_File(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "demo.yaml", []byte(sampleConfig), 0o644))

	config, err := Load(fsys, "demo.yaml")

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, config.Backend)
	assert.Equal(t, hclog.Debug, config.Level())
	assert.Equal(t, "http://localhost:8085/callback", config.OAuth.RedirectURL)
	assert.Equal(t, database.DriverMySQL, config.TokenStore.Driver)
	assert.Equal(t, "docs", config.TokenStore.Database)

	require.Len(t, config.Notifications, 1)
	assert.Equal(t, "team", config.Notifications[0].Name)
	assert.True(t, config.Notifications[0].Enabled)
	assert.Equal(t, "https://hooks.slack.com/services/x", config.Notifications[0].Config["webhook_url"])
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "demo.yaml", []byte("backend: memory\n"), 0o644))

	config, err := Load(fsys, "demo.yaml")

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, config.Backend)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, ":memory:", config.TokenStore.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad yaml", content: "backend: [", want: "failed to parse config file"},
		{name: "unknown backend", content: "backend: gdata\n", want: "backend"},
		{name: "unknown log level", content: "log_level: loud\n", want: "unknown log level 'loud'"},
		{name: "incomplete mysql", content: "token_store:\n  driver: mysql\n", want: "host"},
		{name: "missing redirect", content: "oauth:\n  redirect_url: \"\"\n", want: "redirect_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "demo.yaml", []byte(tt.content), 0o644))

			_, err := Load(fsys, "demo.yaml")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "missing.yaml")
	assert.EqualError(t, err, "config file missing.yaml not found")
}

func TestResolve(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		t.Setenv(EnvPath, "")

		path, err := Resolve(afero.NewMemMapFs())
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("default file", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, DefaultPath, []byte("backend: memory\n"), 0o644))

		path, err := Resolve(fsys)
		require.NoError(t, err)
		assert.Equal(t, DefaultPath, path)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvPath, "/etc/docs-demo.yaml")
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/etc/docs-demo.yaml", []byte("backend: memory\n"), 0o644))

		config, err := LoadDefault(fsys)
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, config.Backend)
	})

	t.Run("environment file missing", func(t *testing.T) {
		t.Setenv(EnvPath, "/etc/missing.yaml")

		_, err := Resolve(afero.NewMemMapFs())
		assert.Error(t, err)
	})
}
