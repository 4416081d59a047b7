package docs

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the type of a remote resource
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindSpreadsheet
	KindPresentation
	KindFolder
	// KindFile is any non-native file (PDF, image, upload). It is listed but never created.
	KindFile
)

var kindNames = map[Kind]string{
	KindDocument:     "document",
	KindSpreadsheet:  "spreadsheet",
	KindPresentation: "presentation",
	KindFolder:       "folder",
	KindFile:         "file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Creatable reports whether entries of this kind can be created as empty placeholders
func (k Kind) Creatable() bool {
	switch k {
	case KindDocument, KindSpreadsheet, KindPresentation, KindFolder:
		return true
	default:
		return false
	}
}

// ParseKind maps a user supplied type tag to one of the four creatable kinds
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "document":
		return KindDocument, nil
	case "presentation":
		return KindPresentation, nil
	case "spreadsheet":
		return KindSpreadsheet, nil
	case "folder":
		return KindFolder, nil
	default:
		return KindUnknown, fmt.Errorf("%w '%s'", ErrUnsupportedKind, tag)
	}
}

// Parent is a folder link of an entry
type Parent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Entry is a remote document, file or folder
type Entry struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Kind             Kind      `json:"kind"`
	Version          string    `json:"version"`
	Parents          []Parent  `json:"parents,omitempty"`
	Link             string    `json:"link,omitempty"`
	LastViewed       time.Time `json:"last_viewed,omitempty"`
	Updated          time.Time `json:"updated"`
	Hidden           bool      `json:"hidden"`
	Starred          bool      `json:"starred"`
	Viewed           bool      `json:"viewed"`
	WritersCanInvite bool      `json:"writers_can_invite"`
}

// ResourceID returns the "<kind>:<id>" identifier shown to the user
func (e *Entry) ResourceID() string {
	return fmt.Sprintf("%s:%s", e.Kind, e.ID)
}

// ParseResourceID strips an optional "<kind>:" prefix from a resource identifier
func ParseResourceID(resourceID string) (string, error) {
	id := strings.TrimSpace(resourceID)
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}

	if id == "" {
		return "", fmt.Errorf("%w '%s'", ErrInvalidResource, resourceID)
	}

	return id, nil
}

// Feed is the ordered list of entries returned by a single request
type Feed struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Collection locates a set of entries. A zero Kind selects every file.
type Collection struct {
	Name string
	Kind Kind
}

var (
	AllFiles     = Collection{Name: "all files"}
	Documents    = Collection{Name: "documents", Kind: KindDocument}
	Spreadsheets = Collection{Name: "spreadsheets", Kind: KindSpreadsheet}
)

// Spreadsheet is a spreadsheet file
type Spreadsheet struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Worksheet is a single tab of a spreadsheet. SpreadsheetID and Title together locate its cells.
type Worksheet struct {
	ID            int64  `json:"id"`
	SpreadsheetID string `json:"spreadsheet_id"`
	Title         string `json:"title"`
	RowCount      int64  `json:"row_count"`
	ColCount      int64  `json:"col_count"`
}

// Cell is a non-empty worksheet cell. Row and Col are 1-based.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Input string `json:"input"`
	Value string `json:"value"`
}

// Address returns the cell address in R1C1 form e.g. R2C3
func (c Cell) Address() string {
	return fmt.Sprintf("R%dC%d", c.Row, c.Col)
}

// A1 returns the cell address in A1 notation e.g. C2
func (c Cell) A1() string {
	return fmt.Sprintf("%s%d", ColumnName(c.Col), c.Row)
}

// ColumnName converts a 1-based column number to its letter form (1 => A, 27 => AA)
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}

	name := []byte{}
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}

	return string(name)
}

// Session is the authenticated handle passed to every operation
type Session struct {
	Account      string
	Documents    DocumentService
	Spreadsheets SpreadsheetService
}
