// Package docsdemo wires the console demos together: configuration, logging, the token
// store, authentication and the document and spreadsheet services.
package docsdemo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"google.golang.org/api/option"

	"github.com/vfa-khuongdv/docs-demo/internal/auth"
	"github.com/vfa-khuongdv/docs-demo/internal/config"
	"github.com/vfa-khuongdv/docs-demo/internal/console"
	"github.com/vfa-khuongdv/docs-demo/internal/database"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/gdrive"
	"github.com/vfa-khuongdv/docs-demo/pkg/gsheets"
	"github.com/vfa-khuongdv/docs-demo/pkg/memory"
	"github.com/vfa-khuongdv/docs-demo/pkg/notification"
)

const (
	IdentifierPrompt = "Enter your OAuth client ID"
	SecretPrompt     = "Enter your OAuth client secret"
)

// Options configures an App
type Options struct {
	// Name of the program, used as the root logger name
	Name string

	Config *config.Config
	Prompt *console.Prompter

	// LogOutput defaults to stderr
	LogOutput io.Writer

	// ClientOptions are added to the options of every Google API client
	ClientOptions []option.ClientOption
}

// App holds everything a demo needs before it can talk to the remote services
type App struct {
	config        *config.Config
	prompt        *console.Prompter
	log           hclog.Logger
	db            *database.Service
	notifier      *notification.Manager
	clientOptions []option.ClientOption
}

// New creates an app from its options. The token store is only opened for the google backend.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if opts.Prompt == nil {
		return nil, fmt.Errorf("prompt is required")
	}

	output := opts.LogOutput
	if output == nil {
		output = os.Stderr
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   opts.Name,
		Level:  opts.Config.Level(),
		Output: output,
	})

	app := &App{
		config:        opts.Config,
		prompt:        opts.Prompt,
		log:           log,
		clientOptions: opts.ClientOptions,
	}

	if opts.Config.Backend == config.BackendGoogle {
		db, err := database.NewService(&opts.Config.TokenStore)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize token store: %w", err)
		}
		app.db = db
	}

	notifier, err := notification.NewManager(opts.Config.Notifications, log)
	if err != nil {
		// a broken notification target never stops the demo
		log.Warn("some notifications are disabled", "error", err)
	}
	app.notifier = notifier

	log.Debug("app initialized", "backend", opts.Config.Backend, "notifiers", notifier.GetNotifierCount())

	return app, nil
}

// Logger returns the root logger
func (a *App) Logger() hclog.Logger {
	return a.log
}

// Prompt returns the prompter every stage of a demo must share, so that read-ahead
// input is not lost
func (a *App) Prompt() *console.Prompter {
	return a.prompt
}

// Notifier returns the notification manager
func (a *App) Notifier() *notification.Manager {
	return a.notifier
}

// Authenticate asks for the identifier/secret pair and opens a session
func (a *App) Authenticate(ctx context.Context) (*docs.Session, error) {
	identifier, err := a.prompt.Ask(IdentifierPrompt)
	if err != nil {
		return nil, err
	}

	secret, err := a.prompt.AskSecret(SecretPrompt)
	if err != nil {
		return nil, err
	}

	a.prompt.Say("Authenticating...")

	var session *docs.Session
	switch a.config.Backend {
	case config.BackendMemory:
		store := memory.NewSampleStore()
		session = &docs.Session{Account: identifier, Documents: store, Spreadsheets: store}
	default:
		session, err = a.googleSession(ctx, identifier, secret)
		if err != nil {
			return nil, err
		}
	}

	a.prompt.Info("Successfully authenticated")
	a.log.Debug("session established", "account", session.Account)

	return session, nil
}

func (a *App) googleSession(ctx context.Context, clientID, clientSecret string) (*docs.Session, error) {
	authService := auth.NewService(clientID, clientSecret, a.config.OAuth.RedirectURL, a.db, a.log)

	client, err := authService.Authenticate(ctx, a.prompt)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, a.clientOptions...)

	driveService, err := gdrive.NewService(ctx, a.log, opts...)
	if err != nil {
		return nil, err
	}

	sheetsService, err := gsheets.NewService(ctx, a.log, opts...)
	if err != nil {
		return nil, err
	}

	account, err := driveService.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if info, err := authService.GetTokenInfo(); err == nil {
		a.log.Debug("token in use", "client", clientID, "expiry", info.Expiry, "valid", info.Valid)
	}

	return &docs.Session{
		Account:      account,
		Documents:    driveService,
		Spreadsheets: sheetsService,
	}, nil
}

// Close releases the token store
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close token store: %w", err)
	}

	a.log.Debug("app closed")
	return nil
}

// Program is the body of a demo, run once a session is established
type Program func(ctx context.Context, app *App, session *docs.Session) error

// Main loads the configuration, prints the banner, authenticates and runs program.
// It returns the process exit code: 0 on completion or when the user leaves, 1 on failure.
func Main(name string, banner []string, program Program, fsys afero.Fs, in io.Reader, out, errOut io.Writer) int {
	prompt := console.New(in, out, errOut)

	cfg, err := config.LoadDefault(fsys)
	if err != nil {
		console.Fail(errOut, err)
		return 1
	}

	app, err := New(Options{Name: name, Config: cfg, Prompt: prompt, LogOutput: errOut})
	if err != nil {
		console.Fail(errOut, err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger().Error("failed to close", "error", err)
		}
	}()

	for _, line := range banner {
		prompt.Say(line)
	}

	ctx := context.Background()

	session, err := app.Authenticate(ctx)
	if err == nil {
		err = program(ctx, app, session)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, console.ErrExit):
		prompt.Say("Exiting the program")
		return 0
	default:
		console.Fail(errOut, err)
		return 1
	}
}
