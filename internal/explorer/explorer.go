// Package explorer walks the user from a spreadsheet down to its cells.
package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/vfa-khuongdv/docs-demo/internal/console"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

const (
	IndexPrompt    = "Enter Index you want further details (0, 1, 2 etc)"
	SearchPrompt   = "Would like to search for a given cell, Enter -1 to exit"
	StartRowPrompt = "Enter starting row number"
	EndRowPrompt   = "Enter ending row number"
	StartColPrompt = "Enter starting column number"
	EndColPrompt   = "Enter ending column number"
	DoneMessage    = "Exiting the program..."
)

type stage int

const (
	stageSpreadsheets stage = iota
	stageSelectSpreadsheet
	stageSelectWorksheet
	stageSearch
	stageRange
	stageDone
)

// Explorer is a single pass through the spreadsheet -> worksheet -> cells pipeline
type Explorer struct {
	session *docs.Session
	prompt  *console.Prompter
	log     hclog.Logger

	spreadsheets []docs.Spreadsheet
	worksheets   []docs.Worksheet
	worksheet    docs.Worksheet
}

// New creates an explorer over a session
func New(session *docs.Session, prompt *console.Prompter, log hclog.Logger) *Explorer {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	return &Explorer{
		session: session,
		prompt:  prompt,
		log:     log.Named("explorer"),
	}
}

// Run drives the pipeline to the end. Bad input re-prompts; remote failures end the run.
// Returns console.ErrExit when the user leaves early.
func (e *Explorer) Run(ctx context.Context) error {
	st := stageSpreadsheets

	for st != stageDone {
		var err error

		e.log.Trace("entering stage", "stage", st)

		switch st {
		case stageSpreadsheets:
			st, err = e.listSpreadsheets(ctx)
		case stageSelectSpreadsheet:
			st, err = e.selectSpreadsheet(ctx)
		case stageSelectWorksheet:
			st, err = e.selectWorksheet(ctx)
		case stageSearch:
			_, err = e.prompt.Ask(SearchPrompt)
			st = stageRange
		case stageRange:
			st, err = e.queryRange(ctx)
		}

		if err != nil {
			if !docs.IsInputError(err) {
				return err
			}
			e.prompt.Warn(err)
		}
	}

	e.prompt.Say(DoneMessage)
	return nil
}

func (e *Explorer) listSpreadsheets(ctx context.Context) (stage, error) {
	spreadsheets, err := e.session.Spreadsheets.Spreadsheets(ctx)
	if err != nil {
		return stageSpreadsheets, fmt.Errorf("failed to list spreadsheets: %w", err)
	}

	e.spreadsheets = spreadsheets
	e.prompt.Sayf("Total number of SpreadSheets found : %d", len(spreadsheets))
	for i, s := range spreadsheets {
		e.prompt.Sayf("(%d) : %s", i, s.Title)
	}

	if len(spreadsheets) == 0 {
		return stageDone, nil
	}

	return stageSelectSpreadsheet, nil
}

func (e *Explorer) selectSpreadsheet(ctx context.Context) (stage, error) {
	i, err := e.askIndex(len(e.spreadsheets))
	if err != nil {
		return stageSelectSpreadsheet, err
	}

	spreadsheet := e.spreadsheets[i]
	worksheets, err := e.session.Spreadsheets.Worksheets(ctx, spreadsheet)
	if err != nil {
		return stageSelectSpreadsheet, fmt.Errorf("failed to list worksheets of '%s': %w", spreadsheet.Title, err)
	}

	e.worksheets = worksheets
	e.prompt.Sayf("SpreadSheet Title : %s", spreadsheet.Title)
	for i, w := range worksheets {
		e.prompt.Sayf("(%d) Worksheet Title : %s, num of Rows : %d, num of Columns : %d", i, w.Title, w.RowCount, w.ColCount)
	}

	if len(worksheets) == 0 {
		return stageDone, nil
	}

	return stageSelectWorksheet, nil
}

func (e *Explorer) selectWorksheet(ctx context.Context) (stage, error) {
	i, err := e.askIndex(len(e.worksheets))
	if err != nil {
		return stageSelectWorksheet, err
	}

	e.worksheet = e.worksheets[i]
	cells, err := e.session.Spreadsheets.Cells(ctx, e.worksheet)
	if err != nil {
		return stageSelectWorksheet, fmt.Errorf("failed to get cells of '%s': %w", e.worksheet.Title, err)
	}

	e.prompt.Say("Showing all cells of the Worksheet")
	e.printCells(cells)

	return stageSearch, nil
}

func (e *Explorer) queryRange(ctx context.Context) (stage, error) {
	r, err := e.askRange()
	if err != nil {
		return stageRange, err
	}

	e.prompt.Sayf("Showing Cell details within rows from %d to %d and within columns from %d to %d",
		r.StartRow, r.EndRow, r.StartCol, r.EndCol)

	cells, err := e.session.Spreadsheets.CellsInRange(ctx, e.worksheet, r)
	if err != nil {
		return stageRange, fmt.Errorf("failed to get cells in %s: %w", r, err)
	}

	e.printCells(cells)

	return stageDone, nil
}

// askIndex reads a list index and checks it against a list of n items
func (e *Explorer) askIndex(n int) (int, error) {
	i, err := e.prompt.AskInt(IndexPrompt)
	if err != nil {
		return 0, err
	}

	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d is not between 0 and %d", docs.ErrIndexOutOfRange, i, n-1)
	}

	return i, nil
}

// askRange reads the four bounds, asking again for any bound that is not a number
func (e *Explorer) askRange() (docs.CellRange, error) {
	var r docs.CellRange

	bounds := []struct {
		prompt string
		value  *int
	}{
		{StartRowPrompt, &r.StartRow},
		{EndRowPrompt, &r.EndRow},
		{StartColPrompt, &r.StartCol},
		{EndColPrompt, &r.EndCol},
	}

	for _, b := range bounds {
		for {
			n, err := e.prompt.AskInt(b.prompt)
			if errors.Is(err, docs.ErrNotANumber) {
				e.prompt.Warn(err)
				continue
			}
			if err != nil {
				return r, err
			}

			*b.value = n
			break
		}
	}

	return r, r.Validate()
}

func (e *Explorer) printCells(cells []docs.Cell) {
	for _, cell := range cells {
		e.prompt.Say(docs.CellSummary(cell))
	}
}
