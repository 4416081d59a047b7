package explorer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfa-khuongdv/docs-demo/internal/console"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/memory"
)

type brokenSheets struct {
	*memory.Store
}

func (brokenSheets) Worksheets(context.Context, docs.Spreadsheet) ([]docs.Worksheet, error) {
	return nil, errors.New("backend error")
}

func run(t *testing.T, spreadsheets docs.SpreadsheetService, input string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	session := &docs.Session{Account: "alice", Spreadsheets: spreadsheets}

	err := New(session, console.New(strings.NewReader(input), out, errOut), nil).Run(context.Background())
	return out.String(), errOut.String(), err
}

func TestExplorer_FullPipeline(t *testing.T) {
	out, errOut, err := run(t, memory.NewSampleStore(), "0\n0\ny\n2\n3\n2\n2\n")

	require.NoError(t, err)
	assert.Empty(t, errOut)

	assert.Contains(t, out, "Total number of SpreadSheets found : 1\n(0) : Budget\n")
	assert.Contains(t, out, "SpreadSheet Title : Budget\n")
	assert.Contains(t, out, "(0) Worksheet Title : Summary, num of Rows : 100, num of Columns : 10\n")
	assert.Contains(t, out, "(1) Worksheet Title : Notes, num of Rows : 50, num of Columns : 5\n")
	assert.Contains(t, out, "Showing all cells of the Worksheet\n\tTitle : A1\tAddress : R1C1\n\tFormula : Item\tValue : Item\n")
	assert.Contains(t, out, "\tTitle : B4\tAddress : R4C2\n\tFormula : =SUM(B2:B3)\tValue : 5000\n")

	_, ranged, found := strings.Cut(out, "Showing Cell details within rows from 2 to 3 and within columns from 2 to 2\n")
	require.True(t, found)
	assert.Equal(t, "\tTitle : B2\tAddress : R2C2\n\tFormula : 4200\tValue : 4200\n"+
		"\tTitle : B3\tAddress : R3C2\n\tFormula : 800\tValue : 800\n"+
		DoneMessage+"\n", ranged)
	assert.True(t, strings.HasSuffix(out, DoneMessage+"\n"))
}

// Test index validation - out of range and non-numeric indexes re-prompt
func TestExplorer_IndexValidation(t *testing.T) {
	out, errOut, err := run(t, memory.NewSampleStore(), "5\nabc\n0\n-3\n1\ny\n1\n1\n1\n1\n")

	require.NoError(t, err)
	assert.Contains(t, errOut, "index out of range: 5 is not between 0 and 0")
	assert.Contains(t, errOut, "not a number: 'abc'")
	assert.Contains(t, errOut, "index out of range: -3 is not between 0 and 1")
	assert.Equal(t, 5, strings.Count(out, IndexPrompt))
	assert.Contains(t, out, "\tTitle : A1\tAddress : R1C1\n\tFormula : Approved\tValue : Approved\n")
}

// Test range validation - an inverted range asks for all four bounds again
func TestExplorer_InvalidRange(t *testing.T) {
	out, errOut, err := run(t, memory.NewSampleStore(), "0\n0\ny\n4\n2\n1\n1\nx\n1\n1\n1\n1\n")

	require.NoError(t, err)
	assert.Contains(t, errOut, "invalid cell range")
	assert.Contains(t, errOut, "not a number: 'x'")
	assert.Equal(t, 3, strings.Count(out, StartRowPrompt))
	assert.Equal(t, 2, strings.Count(out, EndRowPrompt))
	assert.Contains(t, out, "Showing Cell details within rows from 1 to 1 and within columns from 1 to 1\n\tTitle : A1")
}

func TestExplorer_ExitAtSearchPrompt(t *testing.T) {
	out, _, err := run(t, memory.NewSampleStore(), "0\n0\n-1\n")

	assert.ErrorIs(t, err, console.ErrExit)
	assert.Contains(t, out, "Showing all cells of the Worksheet")
	assert.NotContains(t, out, StartRowPrompt)
	assert.NotContains(t, out, DoneMessage)
}

func TestExplorer_ExitAtIndex(t *testing.T) {
	store := memory.NewSampleStore()
	_, _, err := run(t, store, "-1\n")

	assert.ErrorIs(t, err, console.ErrExit)
	assert.Equal(t, 1, store.Calls())
}

func TestExplorer_NoSpreadsheets(t *testing.T) {
	out, _, err := run(t, memory.NewStore(), "")

	require.NoError(t, err)
	assert.Equal(t, "Total number of SpreadSheets found : 0\n"+DoneMessage+"\n", out)
}

func TestExplorer_RemoteFailure(t *testing.T) {
	out, _, err := run(t, brokenSheets{memory.NewSampleStore()}, "0\n0\n")

	assert.EqualError(t, err, "failed to list worksheets of 'Budget': backend error")
	assert.NotContains(t, out, "SpreadSheet Title")
}
