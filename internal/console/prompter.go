package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/cli"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

// Sentinel is the input that ends the run at any prompt
const Sentinel = "-1"

// ErrExit is returned by every prompt once the user asked to leave or input ran out
var ErrExit = errors.New("exit requested")

// Prompter reads user input line by line on top of a cli.Ui
type Prompter struct {
	ui cli.Ui
}

// New creates a prompter reading from in. Output is coloured when out is a terminal.
func New(in io.Reader, out, errOut io.Writer) *Prompter {
	var ui cli.Ui = &cli.BasicUi{
		// BasicUi wraps Reader in a fresh bufio.Reader on every ask; passing one in
		// keeps read-ahead input between prompts.
		Reader:      bufio.NewReader(&lineReader{r: in}),
		Writer:      out,
		ErrorWriter: errOut,
	}

	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		ui = &cli.ColoredUi{
			Ui:          ui,
			OutputColor: cli.UiColorNone,
			InfoColor:   cli.UiColorGreen,
			ErrorColor:  cli.UiColorRed,
			WarnColor:   cli.UiColorYellow,
		}
	}

	return NewWithUi(ui)
}

// NewWithUi creates a prompter over an existing Ui
func NewWithUi(ui cli.Ui) *Prompter {
	return &Prompter{ui: ui}
}

// Say prints a line
func (p *Prompter) Say(message string) {
	p.ui.Output(message)
}

// Sayf prints a formatted line
func (p *Prompter) Sayf(format string, args ...any) {
	p.ui.Output(fmt.Sprintf(format, args...))
}

// Info prints a confirmation line
func (p *Prompter) Info(message string) {
	p.ui.Info(message)
}

// Warn reports a recoverable error to the user
func (p *Prompter) Warn(err error) {
	p.ui.Error(err.Error())
}

// Ask prints "<query> : " and reads until a non-empty line is entered, returning it trimmed.
// The sentinel and end of input both return ErrExit.
func (p *Prompter) Ask(query string) (string, error) {
	return p.ask(query, p.ui.Ask)
}

// AskSecret is Ask without echoing the input on a terminal
func (p *Prompter) AskSecret(query string) (string, error) {
	return p.ask(query, p.ui.AskSecret)
}

// AskInt prompts for a whole number. A non-numeric answer returns docs.ErrNotANumber.
func (p *Prompter) AskInt(query string) (int, error) {
	line, err := p.Ask(query)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", docs.ErrNotANumber, line)
	}

	return n, nil
}

// AuthorizationCode shows the consent URL and reads back the authorization code. The
// address the browser was redirected to is accepted as well as the bare code.
func (p *Prompter) AuthorizationCode(consentURL string) (string, error) {
	p.Say("Go to the following link in your browser and allow access:")
	p.Say(consentURL)
	p.Say("Then paste the code parameter of the address you were redirected to (or the whole address):")

	answer, err := p.Ask("Authorization code")
	if err != nil {
		return "", err
	}

	if redirected, err := url.Parse(answer); err == nil && redirected.Query().Has("code") {
		return redirected.Query().Get("code"), nil
	}

	return answer, nil
}

func (p *Prompter) ask(query string, read func(string) (string, error)) (string, error) {
	for {
		line, err := read(query + " :")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: end of input", ErrExit)
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case Sentinel:
			return "", ErrExit
		default:
			return line, nil
		}
	}
}

// Fail prints a labelled failure line
func Fail(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("FAILED:"), err)
}

// lineReader terminates a final line that has no newline, since BasicUi drops any
// line read together with io.EOF
type lineReader struct {
	r       io.Reader
	pending bool
}

func (l *lineReader) Read(b []byte) (int, error) {
	n, err := l.r.Read(b)
	if n > 0 {
		l.pending = b[n-1] != '\n'
	}

	if !errors.Is(err, io.EOF) || !l.pending {
		return n, err
	}
	if n > 0 {
		return n, nil
	}
	if len(b) == 0 {
		return 0, nil
	}

	b[0] = '\n'
	l.pending = false
	return 1, nil
}
