// Package memory implements the document and spreadsheet services over in-process data.
// It backs the "memory" configuration backend and the package tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

// Store holds entries, worksheets and cells. It is not safe for concurrent use.
type Store struct {
	entries    []*docs.Entry
	worksheets map[string][]docs.Worksheet
	cells      map[string]map[string][]docs.Cell
	calls      int
}

var (
	_ docs.DocumentService    = (*Store)(nil)
	_ docs.SpreadsheetService = (*Store)(nil)
)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		worksheets: make(map[string][]docs.Worksheet),
		cells:      make(map[string]map[string][]docs.Cell),
	}
}

// Calls returns the number of service operations invoked so far
func (s *Store) Calls() int {
	return s.calls
}

// Add appends an entry and returns its id. A missing id or version is generated.
func (s *Store) Add(entry docs.Entry) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Version == "" {
		entry.Version = "1"
	}
	if entry.Updated.IsZero() {
		entry.Updated = time.Now()
	}

	s.entries = append(s.entries, &entry)
	return entry.ID
}

// AddWorksheet adds a worksheet and its non-empty cells to a spreadsheet entry
func (s *Store) AddWorksheet(spreadsheetID string, title string, rows, cols int64, cells ...docs.Cell) docs.Worksheet {
	worksheet := docs.Worksheet{
		ID:            int64(len(s.worksheets[spreadsheetID])),
		SpreadsheetID: spreadsheetID,
		Title:         title,
		RowCount:      rows,
		ColCount:      cols,
	}

	s.worksheets[spreadsheetID] = append(s.worksheets[spreadsheetID], worksheet)

	if s.cells[spreadsheetID] == nil {
		s.cells[spreadsheetID] = make(map[string][]docs.Cell)
	}

	sorted := append([]docs.Cell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	s.cells[spreadsheetID][title] = sorted

	return worksheet
}

// Touch simulates a remote edit by bumping the version of an entry
func (s *Store) Touch(id string) error {
	entry := s.find(id)
	if entry == nil {
		return fmt.Errorf("entry %s: %w", id, docs.ErrNotFound)
	}

	v, err := strconv.ParseInt(entry.Version, 10, 64)
	if err != nil {
		v = 0
	}

	entry.Version = strconv.FormatInt(v+1, 10)
	entry.Updated = time.Now()

	return nil
}

// Exists reports whether an entry has not been trashed
func (s *Store) Exists(id string) bool {
	return s.find(id) != nil
}

func (s *Store) Feed(ctx context.Context, collection docs.Collection) (*docs.Feed, error) {
	s.calls++

	feed := docs.Feed{Title: collection.Name}
	for _, entry := range s.entries {
		if collection.Kind == docs.KindUnknown || collection.Kind == entry.Kind {
			feed.Entries = append(feed.Entries, *entry)
		}
	}

	return &feed, nil
}

func (s *Store) Entry(ctx context.Context, id string) (*docs.Entry, error) {
	s.calls++

	entry := s.find(id)
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", id, docs.ErrNotFound)
	}

	e := *entry
	return &e, nil
}

func (s *Store) Insert(ctx context.Context, collection docs.Collection, kind docs.Kind, title string) (*docs.Entry, error) {
	s.calls++

	if !kind.Creatable() {
		return nil, fmt.Errorf("%w '%s'", docs.ErrUnsupportedKind, kind)
	}

	id := s.Add(docs.Entry{Title: title, Kind: kind})
	if kind == docs.KindSpreadsheet {
		s.AddWorksheet(id, "Sheet1", 1000, 26)
	}

	e := *s.find(id)
	return &e, nil
}

func (s *Store) Delete(ctx context.Context, id string, version string) error {
	s.calls++

	for i, entry := range s.entries {
		if entry.ID != id {
			continue
		}

		if entry.Version != version {
			return fmt.Errorf("entry %s is at version %s, not %s: %w", id, entry.Version, version, docs.ErrConflict)
		}

		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return nil
	}

	return fmt.Errorf("entry %s: %w", id, docs.ErrNotFound)
}

func (s *Store) Spreadsheets(ctx context.Context) ([]docs.Spreadsheet, error) {
	s.calls++

	spreadsheets := []docs.Spreadsheet{}
	for _, entry := range s.entries {
		if entry.Kind == docs.KindSpreadsheet {
			spreadsheets = append(spreadsheets, docs.Spreadsheet{ID: entry.ID, Title: entry.Title})
		}
	}

	return spreadsheets, nil
}

func (s *Store) Worksheets(ctx context.Context, spreadsheet docs.Spreadsheet) ([]docs.Worksheet, error) {
	s.calls++

	if s.find(spreadsheet.ID) == nil {
		return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheet.ID, docs.ErrNotFound)
	}

	return append([]docs.Worksheet{}, s.worksheets[spreadsheet.ID]...), nil
}

func (s *Store) Cells(ctx context.Context, worksheet docs.Worksheet) ([]docs.Cell, error) {
	s.calls++

	cells, ok := s.cells[worksheet.SpreadsheetID][worksheet.Title]
	if !ok {
		return nil, fmt.Errorf("worksheet '%s': %w", worksheet.Title, docs.ErrNotFound)
	}

	return append([]docs.Cell{}, cells...), nil
}

func (s *Store) CellsInRange(ctx context.Context, worksheet docs.Worksheet, r docs.CellRange) ([]docs.Cell, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cells, err := s.Cells(ctx, worksheet)
	if err != nil {
		return nil, err
	}

	inside := []docs.Cell{}
	for _, cell := range cells {
		if r.Contains(cell) {
			inside = append(inside, cell)
		}
	}

	return inside, nil
}

func (s *Store) find(id string) *docs.Entry {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry
		}
	}

	return nil
}
