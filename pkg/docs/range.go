package docs

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CellRange is a rectangular window of cells. Bounds are 1-based and inclusive.
type CellRange struct {
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`
	StartCol int `json:"start_col"`
	EndCol   int `json:"end_col"`
}

// Validate checks that every bound is positive and that no start exceeds its end
func (r CellRange) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.StartRow, validation.Required, validation.Min(1)),
		validation.Field(&r.EndRow, validation.Required, validation.Min(r.StartRow).Error("must not be less than the start row")),
		validation.Field(&r.StartCol, validation.Required, validation.Min(1)),
		validation.Field(&r.EndCol, validation.Required, validation.Min(r.StartCol).Error("must not be less than the start column")),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	return nil
}

// Contains reports whether the cell lies inside the range
func (r CellRange) Contains(cell Cell) bool {
	return cell.Row >= r.StartRow && cell.Row <= r.EndRow &&
		cell.Col >= r.StartCol && cell.Col <= r.EndCol
}

// A1 returns the range in A1 notation qualified by the worksheet title e.g. 'Sheet 1'!B2:D5
func (r CellRange) A1(worksheet string) string {
	return fmt.Sprintf("%s!%s%d:%s%d", QuoteSheet(worksheet), ColumnName(r.StartCol), r.StartRow, ColumnName(r.EndCol), r.EndRow)
}

func (r CellRange) String() string {
	return fmt.Sprintf("rows %d-%d, columns %d-%d", r.StartRow, r.EndRow, r.StartCol, r.EndCol)
}

// QuoteSheet quotes a worksheet title for use in an A1 range
func QuoteSheet(title string) string {
	quoted := []rune{'\''}
	for _, ch := range title {
		if ch == '\'' {
			quoted = append(quoted, '\'')
		}
		quoted = append(quoted, ch)
	}

	return string(append(quoted, '\''))
}
