package memory

import (
	"time"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

// NewSampleStore creates a store preloaded with a small drive for offline demos
func NewSampleStore() *Store {
	s := NewStore()
	now := time.Now()

	projects := s.Add(docs.Entry{ID: "projects", Title: "Projects", Kind: docs.KindFolder, Updated: now})

	s.Add(docs.Entry{
		ID:      "q3-report",
		Title:   "Q3 Report",
		Kind:    docs.KindDocument,
		Parents: []docs.Parent{{ID: projects, Title: "Projects"}},
		Updated: now,
		Viewed:  true,
	})

	s.Add(docs.Entry{ID: "kickoff", Title: "Kickoff", Kind: docs.KindPresentation, Updated: now})

	budget := s.Add(docs.Entry{ID: "budget", Title: "Budget", Kind: docs.KindSpreadsheet, Updated: now, Starred: true})

	s.AddWorksheet(budget, "Summary", 100, 10,
		docs.Cell{Row: 1, Col: 1, Input: "Item", Value: "Item"},
		docs.Cell{Row: 1, Col: 2, Input: "Cost", Value: "Cost"},
		docs.Cell{Row: 2, Col: 1, Input: "Laptops", Value: "Laptops"},
		docs.Cell{Row: 2, Col: 2, Input: "4200", Value: "4200"},
		docs.Cell{Row: 3, Col: 1, Input: "Licences", Value: "Licences"},
		docs.Cell{Row: 3, Col: 2, Input: "800", Value: "800"},
		docs.Cell{Row: 4, Col: 1, Input: "Total", Value: "Total"},
		docs.Cell{Row: 4, Col: 2, Input: "=SUM(B2:B3)", Value: "5000"},
	)
	s.AddWorksheet(budget, "Notes", 50, 5,
		docs.Cell{Row: 1, Col: 1, Input: "Approved", Value: "Approved"},
	)

	s.Add(docs.Entry{ID: "scan", Title: "Invoice scan", Kind: docs.KindFile, Updated: now})

	return s
}
