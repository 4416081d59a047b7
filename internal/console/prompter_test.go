package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return New(strings.NewReader(input), out, errOut), out, errOut
}

func TestPrompter_Ask(t *testing.T) {
	p, out, _ := newTestPrompter("\n   \n  listAll  \nsecond\n")

	line, err := p.Ask("Command")
	require.NoError(t, err)
	assert.Equal(t, "listAll", line)

	line, err = p.Ask("Command")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	assert.Equal(t, 4, strings.Count(out.String(), "Command : "))
}

func TestPrompter_AskKeepsSpaces(t *testing.T) {
	p, _, _ := newTestPrompter("Quarterly Report 2024\n")

	line, err := p.Ask("Name ")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Report 2024", line)
}

func TestPrompter_Sentinel(t *testing.T) {
	p, _, _ := newTestPrompter("-1\n")

	_, err := p.Ask("Command")
	assert.ErrorIs(t, err, ErrExit)
}

func TestPrompter_EndOfInput(t *testing.T) {
	p, _, _ := newTestPrompter("")

	_, err := p.Ask("Command")
	assert.ErrorIs(t, err, ErrExit)

	_, err = p.AskInt("Row")
	assert.ErrorIs(t, err, ErrExit)
}

func TestPrompter_AskInt(t *testing.T) {
	p, _, _ := newTestPrompter("abc\n 7 \n-1\n")

	_, err := p.AskInt("Row")
	assert.ErrorIs(t, err, docs.ErrNotANumber)
	assert.True(t, docs.IsInputError(err))

	n, err := p.AskInt("Row")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = p.AskInt("Row")
	assert.ErrorIs(t, err, ErrExit)
}

func TestPrompter_AskSecret(t *testing.T) {
	p, _, _ := newTestPrompter("s3cret\n")

	secret, err := p.AskSecret("Enter your password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
}

func TestPrompter_AuthorizationCode(t *testing.T) {
	p, out, _ := newTestPrompter("4/code\n")

	code, err := p.AuthorizationCode("https://accounts.google.com/o/oauth2/auth?client_id=x")
	require.NoError(t, err)
	assert.Equal(t, "4/code", code)
	assert.Contains(t, out.String(), "https://accounts.google.com/o/oauth2/auth?client_id=x\n")
	assert.Contains(t, out.String(), "code parameter")
}

func TestPrompter_AuthorizationCodeFromRedirect(t *testing.T) {
	p, _, _ := newTestPrompter("http://localhost/?state=state-token&code=4%2F0Abc&scope=drive\n")

	code, err := p.AuthorizationCode("https://accounts.google.com/o/oauth2/auth?client_id=x")
	require.NoError(t, err)
	assert.Equal(t, "4/0Abc", code)
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p, _, _ := newTestPrompter("client-id\nlistAll")

	line, err := p.Ask("Enter your OAuth client ID")
	require.NoError(t, err)
	assert.Equal(t, "client-id", line)

	line, err = p.Ask("Your Option")
	require.NoError(t, err)
	assert.Equal(t, "listAll", line)

	_, err = p.Ask("Your Option")
	assert.ErrorIs(t, err, ErrExit)
}

func TestPrompter_Output(t *testing.T) {
	p, out, errOut := newTestPrompter("")

	p.Say("List of Possible Options : ")
	p.Sayf("(%d) : %s", 0, "Budget")
	p.Info("Successfully trashed element")
	p.Warn(errors.New("unsupported type 'memo'"))

	assert.Equal(t, "List of Possible Options : \n(0) : Budget\nSuccessfully trashed element\n", out.String())
	assert.Equal(t, "unsupported type 'memo'\n", errOut.String())
}

func TestFail(t *testing.T) {
	buf := &bytes.Buffer{}
	Fail(buf, errors.New("remote unavailable"))

	assert.Contains(t, buf.String(), "FAILED:")
	assert.True(t, strings.HasSuffix(buf.String(), " remote unavailable\n"))
}
