package docs

import (
	"fmt"
	"strings"
)

// BriefSummary formats an entry as a single listing line:
//
//	-- <title> [<parent>] [<parent>] <resource id>
func BriefSummary(entry *Entry) string {
	parents := make([]string, 0, len(entry.Parents))
	for _, p := range entry.Parents {
		parents = append(parents, fmt.Sprintf("[%s]", p.Title))
	}

	return fmt.Sprintf(" -- %s %s %s", entry.Title, strings.Join(parents, " "), entry.ResourceID())
}

// DetailedSummary formats the full metadata of an entry over several lines
func DetailedSummary(entry *Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "'%s' (%s)\n", entry.Title, entry.Kind)
	if entry.Link != "" {
		fmt.Fprintf(&b, "  link to Google Docs: %s\n", entry.Link)
	}
	fmt.Fprintf(&b, "  resource id: %s\n", entry.ResourceID())

	if !entry.LastViewed.IsZero() {
		fmt.Fprintf(&b, "  last viewed: %s\n", entry.LastViewed.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(&b, "  last updated: %s\n", entry.Updated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  viewed by user? %t\n", entry.Viewed)
	fmt.Fprintf(&b, "  writersCanInvite? %t\n", entry.WritersCanInvite)
	fmt.Fprintf(&b, "  hidden? %t\n", entry.Hidden)
	fmt.Fprintf(&b, "  starred? %t", entry.Starred)

	return b.String()
}

// CellSummary formats a cell over two tab indented lines
func CellSummary(cell Cell) string {
	return fmt.Sprintf("\tTitle : %s\tAddress : %s\n\tFormula : %s\tValue : %s", cell.A1(), cell.Address(), cell.Input, cell.Value)
}
