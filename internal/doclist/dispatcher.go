// Package doclist runs the interactive document list loop: browsing collections,
// creating entries and trashing them.
package doclist

import (
	"context"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/vfa-khuongdv/docs-demo/internal/console"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/notification"
)

// CommandPrompt is shown before every command
const CommandPrompt = "Your Option"

// UnknownCommand is printed for input outside the command vocabulary
const UnknownCommand = "Unknown command. Type 'help' for a list of commands."

// Help lists the commands, printed by "help"
var Help = []string{
	"List of Possible Options : ",
	"listAll : Lists all files stored in your Google drive",
	"listDocuments : Lists all documents stored in your Google drive",
	"listSpreadSheets : Lists all SpreadSheets stored in your Google drive",
	"create : Creates a new Document/SpreadSheet/Presentation/Folder in your Google Drive",
	"trash : Trashes a file stored in your Google drive",
	"-1 : Exit the program",
}

// Notifier announces created and trashed entries
type Notifier interface {
	Notify(ctx context.Context, event *notification.EntryEvent) error
}

type state int

const (
	stateRead state = iota
	stateDispatch
	stateExit
)

// Dispatcher reads commands and runs them against a session
type Dispatcher struct {
	session  *docs.Session
	prompt   *console.Prompter
	notifier Notifier
	log      hclog.Logger
	commands map[string]func(context.Context) error
}

// NewDispatcher creates a dispatcher. notifier may be nil.
func NewDispatcher(session *docs.Session, prompt *console.Prompter, notifier Notifier, log hclog.Logger) *Dispatcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	d := &Dispatcher{
		session:  session,
		prompt:   prompt,
		notifier: notifier,
		log:      log.Named("doclist"),
	}

	d.commands = map[string]func(context.Context) error{
		"help": func(context.Context) error {
			d.Usage()
			return nil
		},
		"listall": func(ctx context.Context) error {
			return d.Browse(ctx, docs.AllFiles)
		},
		"listdocuments": func(ctx context.Context) error {
			return d.Browse(ctx, docs.Documents)
		},
		"listspreadsheets": func(ctx context.Context) error {
			return d.Browse(ctx, docs.Spreadsheets)
		},
		"create": d.Create,
		"trash":  d.Trash,
	}

	return d
}

// Usage prints the command list
func (d *Dispatcher) Usage() {
	for _, line := range Help {
		d.prompt.Say(line)
	}
}

// Run reads and dispatches commands until the user exits or a remote call fails.
// Leaving through the sentinel or end of input returns console.ErrExit.
func (d *Dispatcher) Run(ctx context.Context) error {
	var command string

	for st := stateRead; ; {
		switch st {
		case stateRead:
			line, err := d.prompt.Ask(CommandPrompt)
			if errors.Is(err, console.ErrExit) {
				st = stateExit
				continue
			}
			if err != nil {
				return err
			}
			command, st = line, stateDispatch

		case stateDispatch:
			err := d.Dispatch(ctx, command)
			switch {
			case err == nil:
				st = stateRead
			case errors.Is(err, console.ErrExit):
				st = stateExit
			case docs.IsInputError(err):
				d.prompt.Warn(err)
				st = stateRead
			default:
				return err
			}

		case stateExit:
			return console.ErrExit
		}
	}
}

// Dispatch runs a single command. Unknown commands are reported and ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, command string) error {
	run, ok := d.commands[strings.ToLower(strings.TrimSpace(command))]
	if !ok {
		d.prompt.Say(UnknownCommand)
		return nil
	}

	d.log.Debug("dispatching", "command", command)
	return run(ctx)
}
