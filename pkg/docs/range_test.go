package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellRange_Validate(t *testing.T) {
	tests := []struct {
		name        string
		r           CellRange
		expectError bool
	}{
		{"single cell", CellRange{StartRow: 1, EndRow: 1, StartCol: 1, EndCol: 1}, false},
		{"block", CellRange{StartRow: 2, EndRow: 5, StartCol: 1, EndCol: 4}, false},
		{"start row after end row", CellRange{StartRow: 5, EndRow: 2, StartCol: 1, EndCol: 4}, true},
		{"start column after end column", CellRange{StartRow: 1, EndRow: 2, StartCol: 4, EndCol: 1}, true},
		{"zero row", CellRange{StartRow: 0, EndRow: 2, StartCol: 1, EndCol: 1}, true},
		{"negative column", CellRange{StartRow: 1, EndRow: 2, StartCol: -3, EndCol: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidRange)
				assert.True(t, IsInputError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCellRange_Contains(t *testing.T) {
	r := CellRange{StartRow: 2, EndRow: 4, StartCol: 1, EndCol: 3}

	assert.True(t, r.Contains(Cell{Row: 2, Col: 1}))
	assert.True(t, r.Contains(Cell{Row: 4, Col: 3}))
	assert.True(t, r.Contains(Cell{Row: 3, Col: 2}))
	assert.False(t, r.Contains(Cell{Row: 1, Col: 1}))
	assert.False(t, r.Contains(Cell{Row: 5, Col: 1}))
	assert.False(t, r.Contains(Cell{Row: 3, Col: 4}))
}

func TestCellRange_A1(t *testing.T) {
	r := CellRange{StartRow: 2, EndRow: 5, StartCol: 2, EndCol: 4}

	assert.Equal(t, "'Sheet1'!B2:D5", r.A1("Sheet1"))
	assert.Equal(t, "'Bob''s sheet'!B2:D5", r.A1("Bob's sheet"))
	assert.Equal(t, "rows 2-5, columns 2-4", r.String())
}
