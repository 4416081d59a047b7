package docs

import (
	"context"
)

// DocumentService is the remote document list collaborator
type DocumentService interface {
	// Feed fetches the first page of a collection, in remote order
	Feed(ctx context.Context, collection Collection) (*Feed, error)

	// Entry fetches a single entry by id
	Entry(ctx context.Context, id string) (*Entry, error)

	// Insert creates an empty entry of the given kind in a collection
	Insert(ctx context.Context, collection Collection, kind Kind, title string) (*Entry, error)

	// Delete trashes an entry, provided its remote version still matches version.
	// Returns ErrConflict (and leaves the entry untouched) otherwise.
	Delete(ctx context.Context, id string, version string) error
}

// SpreadsheetService is the remote spreadsheet collaborator
type SpreadsheetService interface {
	Spreadsheets(ctx context.Context) ([]Spreadsheet, error)
	Worksheets(ctx context.Context, spreadsheet Spreadsheet) ([]Worksheet, error)
	Cells(ctx context.Context, worksheet Worksheet) ([]Cell, error)

	// CellsInRange returns only the cells inside r. r must be valid.
	CellsInRange(ctx context.Context, worksheet Worksheet, r CellRange) ([]Cell, error)
}
