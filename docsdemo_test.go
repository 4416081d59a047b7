package docsdemo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/vfa-khuongdv/docs-demo/internal/config"
	"github.com/vfa-khuongdv/docs-demo/internal/console"
	"github.com/vfa-khuongdv/docs-demo/internal/database"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/gdrive"
	"github.com/vfa-khuongdv/docs-demo/pkg/memory"
	"github.com/vfa-khuongdv/docs-demo/pkg/notification"
)

func newApp(t *testing.T, cfg *config.Config, input string, opts ...option.ClientOption) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	app, err := New(Options{
		Name:          "docs-demo-test",
		Config:        cfg,
		Prompt:        console.New(strings.NewReader(input), out, out),
		LogOutput:     &bytes.Buffer{},
		ClientOptions: opts,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	return app, out
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	assert.EqualError(t, err, "configuration is required")

	_, err = New(Options{Config: config.Default()})
	assert.EqualError(t, err, "prompt is required")

	cfg := config.Default()
	cfg.TokenStore = database.Config{Driver: "postgres"}
	_, err = New(Options{Config: cfg, Prompt: console.New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})})
	assert.ErrorContains(t, err, "failed to initialize token store")
}

func TestNew_BrokenNotificationIsNotFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory
	cfg.Notifications = []notification.Config{
		{Name: "broken", Channel: "slack", Enabled: true},
		{Name: "team", Channel: "discord", Enabled: true, Config: map[string]any{"webhook_url": "https://discord.com/api/webhooks/x"}},
	}

	app, _ := newApp(t, cfg, "")

	assert.Equal(t, 1, app.Notifier().GetNotifierCount())
	assert.Nil(t, app.db)
}

func TestAuthenticate_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory

	app, out := newApp(t, cfg, "alice\nsecret\n")

	session, err := app.Authenticate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "alice", session.Account)
	assert.IsType(t, &memory.Store{}, session.Documents)
	assert.Contains(t, out.String(), IdentifierPrompt+" : ")
	assert.Contains(t, out.String(), "Authenticating...\nSuccessfully authenticated\n")
}

func TestAuthenticate_Exit(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory

	app, out := newApp(t, cfg, "alice\n-1\n")

	_, err := app.Authenticate(context.Background())
	assert.ErrorIs(t, err, console.ErrExit)
	assert.NotContains(t, out.String(), "Authenticating...")
}

// Test Authenticate - a stored token skips the consent page
func TestAuthenticate_GoogleStoredToken(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&drive.About{User: &drive.User{EmailAddress: "alice@example.com"}})
	}))
	defer server.Close()

	app, out := newApp(t, config.Default(), "client-id\nclient-secret\n", option.WithEndpoint(server.URL+"/"))
	require.NoError(t, app.db.SaveTokenConfig(&database.TokenConfig{
		ClientID:    "client-id",
		AccessToken: "stored-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))

	session, err := app.Authenticate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", session.Account)
	assert.IsType(t, &gdrive.Service{}, session.Documents)
	assert.Equal(t, "Bearer stored-token", authorization)
	assert.NotContains(t, out.String(), "Authorization code")
}

func TestAuthenticate_GoogleExitAtConsent(t *testing.T) {
	app, out := newApp(t, config.Default(), "client-id\nclient-secret\n-1\n")

	_, err := app.Authenticate(context.Background())

	assert.ErrorIs(t, err, console.ErrExit)
	assert.Contains(t, out.String(), "https://accounts.google.com/o/oauth2/auth?")
	assert.Contains(t, out.String(), "client_id=client-id")
	assert.Contains(t, out.String(), "redirect_uri=http%3A%2F%2Flocalhost&")
}

func memoryFs(t *testing.T) afero.Fs {
	t.Helper()
	t.Setenv(config.EnvPath, "")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, config.DefaultPath, []byte("backend: memory\n"), 0o644))

	return fsys
}

func TestMain_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		program  Program
		code     int
		contains string
	}{
		{
			name:  "completed",
			input: "alice\nsecret\n",
			program: func(ctx context.Context, app *App, session *docs.Session) error {
				return nil
			},
			code:     0,
			contains: "Successfully authenticated\n",
		},
		{
			name:  "sentinel",
			input: "alice\nsecret\n",
			program: func(ctx context.Context, app *App, session *docs.Session) error {
				return console.ErrExit
			},
			code:     0,
			contains: "Exiting the program\n",
		},
		{
			name:  "sentinel at login",
			input: "-1\n",
			program: func(ctx context.Context, app *App, session *docs.Session) error {
				return errors.New("program must not run")
			},
			code:     0,
			contains: "Exiting the program\n",
		},
		{
			name:  "remote failure",
			input: "alice\nsecret\n",
			program: func(ctx context.Context, app *App, session *docs.Session) error {
				return errors.New("failed to list all files: service unavailable")
			},
			code:     1,
			contains: "FAILED: failed to list all files: service unavailable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			code := Main("docs-demo-test", []string{"Welcome"}, tt.program, memoryFs(t), strings.NewReader(tt.input), out, out)

			assert.Equal(t, tt.code, code)
			assert.True(t, strings.HasPrefix(out.String(), "Welcome\n"))
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}

func TestMain_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, config.DefaultPath, []byte("backend: gdata\n"), 0o644))

	errOut := &bytes.Buffer{}
	code := Main("docs-demo-test", nil, nil, fsys, strings.NewReader(""), &bytes.Buffer{}, errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "FAILED: invalid configuration")
}
