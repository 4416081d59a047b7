// Package gsheets implements the spreadsheet service on top of the Google Sheets v4 API.
// Spreadsheets are listed through Drive.
package gsheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/gdrive"
)

const (
	worksheetFields = "properties.title,sheets.properties(sheetId,title,gridProperties(rowCount,columnCount))"
	cellFields      = "sheets(properties(sheetId,title),data(startRow,startColumn,rowData(values(userEnteredValue,formattedValue))))"
)

// Service reads spreadsheets, worksheets and cells
type Service struct {
	drive  *drive.Service
	sheets *sheets.Service
	log    hclog.Logger
}

var _ docs.SpreadsheetService = (*Service)(nil)

// NewService creates a spreadsheet service. The same client options configure both the
// Drive and the Sheets clients.
func NewService(ctx context.Context, log hclog.Logger, opts ...option.ClientOption) (*Service, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Service{
		drive:  driveService,
		sheets: sheetsService,
		log:    log.Named("gsheets"),
	}, nil
}

// Spreadsheets lists the first page of spreadsheets visible to the user
func (s *Service) Spreadsheets(ctx context.Context) ([]docs.Spreadsheet, error) {
	query := gdrive.Query(docs.Spreadsheets)
	s.log.Debug("listing spreadsheets", "query", query)

	res, err := s.drive.Files.List().
		Q(query).
		Fields("files(id,name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdrive.WrapError("list spreadsheets", err)
	}

	spreadsheets := make([]docs.Spreadsheet, 0, len(res.Files))
	for _, f := range res.Files {
		spreadsheets = append(spreadsheets, docs.Spreadsheet{ID: f.Id, Title: f.Name})
	}

	return spreadsheets, nil
}

// Worksheets returns the tabs of a spreadsheet in display order
func (s *Service) Worksheets(ctx context.Context, spreadsheet docs.Spreadsheet) ([]docs.Worksheet, error) {
	s.log.Debug("getting worksheets", "spreadsheet", spreadsheet.ID)

	res, err := s.sheets.Spreadsheets.Get(spreadsheet.ID).
		Fields(worksheetFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdrive.WrapError("get spreadsheet", err)
	}

	worksheets := make([]docs.Worksheet, 0, len(res.Sheets))
	for _, sheet := range res.Sheets {
		if sheet.Properties == nil {
			continue
		}

		worksheet := docs.Worksheet{
			ID:            sheet.Properties.SheetId,
			SpreadsheetID: spreadsheet.ID,
			Title:         sheet.Properties.Title,
		}
		if grid := sheet.Properties.GridProperties; grid != nil {
			worksheet.RowCount = grid.RowCount
			worksheet.ColCount = grid.ColumnCount
		}

		worksheets = append(worksheets, worksheet)
	}

	return worksheets, nil
}

// Cells returns every non-empty cell of a worksheet, row by row
func (s *Service) Cells(ctx context.Context, worksheet docs.Worksheet) ([]docs.Cell, error) {
	return s.cells(ctx, worksheet, docs.QuoteSheet(worksheet.Title))
}

// CellsInRange returns the non-empty cells inside r
func (s *Service) CellsInRange(ctx context.Context, worksheet docs.Worksheet, r docs.CellRange) ([]docs.Cell, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cells, err := s.cells(ctx, worksheet, r.A1(worksheet.Title))
	if err != nil {
		return nil, err
	}

	inRange := cells[:0]
	for _, cell := range cells {
		if r.Contains(cell) {
			inRange = append(inRange, cell)
		}
	}

	return inRange, nil
}

func (s *Service) cells(ctx context.Context, worksheet docs.Worksheet, a1 string) ([]docs.Cell, error) {
	s.log.Debug("getting cells", "spreadsheet", worksheet.SpreadsheetID, "range", a1)

	res, err := s.sheets.Spreadsheets.Get(worksheet.SpreadsheetID).
		Ranges(a1).
		IncludeGridData(true).
		Fields(cellFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, gdrive.WrapError("get cells", err)
	}

	var cells []docs.Cell
	for _, sheet := range res.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title != worksheet.Title {
			continue
		}

		for _, data := range sheet.Data {
			for i, row := range data.RowData {
				for j, value := range row.Values {
					cell, ok := toCell(value, int(data.StartRow)+i+1, int(data.StartColumn)+j+1)
					if ok {
						cells = append(cells, cell)
					}
				}
			}
		}
	}

	return cells, nil
}

func toCell(value *sheets.CellData, row, col int) (docs.Cell, bool) {
	if value == nil {
		return docs.Cell{}, false
	}

	input := inputValue(value.UserEnteredValue)
	if input == "" && value.FormattedValue == "" {
		return docs.Cell{}, false
	}

	return docs.Cell{
		Row:   row,
		Col:   col,
		Input: input,
		Value: value.FormattedValue,
	}, true
}

// inputValue renders what the user typed into a cell: the formula if there is one
func inputValue(v *sheets.ExtendedValue) string {
	switch {
	case v == nil:
		return ""
	case v.FormulaValue != nil:
		return *v.FormulaValue
	case v.StringValue != nil:
		return *v.StringValue
	case v.NumberValue != nil:
		return strconv.FormatFloat(*v.NumberValue, 'f', -1, 64)
	case v.BoolValue != nil:
		return strconv.FormatBool(*v.BoolValue)
	case v.ErrorValue != nil:
		return v.ErrorValue.Type
	default:
		return ""
	}
}
