package listing

import "fmt"

// PageLink is one numbered pagination link. Index is zero-based, Number is what is displayed.
type PageLink struct {
	Index  int  `json:"index"`
	Number int  `json:"number"`
	Active bool `json:"active"`
}

// Pagination is the rendered pagination control.
type Pagination struct {
	Links      []PageLink `json:"links"`
	HasPrev    bool       `json:"hasPrev"`
	HasNext    bool       `json:"hasNext"`
	PrevIndex  int        `json:"prevIndex"`
	NextIndex  int        `json:"nextIndex"`
	TotalPages int        `json:"totalPages"`
}

// BuildPagination renders at most window links around the current zero-based page.
func BuildPagination(page, totalPages, window int) Pagination {
	p := Pagination{TotalPages: totalPages}
	if totalPages <= 0 {
		return p
	}
	if window <= 0 {
		window = 5
	}
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	start := page - window/2
	if start > totalPages-window {
		start = totalPages - window
	}
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > totalPages {
		end = totalPages
	}

	for i := start; i < end; i++ {
		p.Links = append(p.Links, PageLink{Index: i, Number: i + 1, Active: i == page})
	}
	p.HasPrev = page > 0
	p.HasNext = page < totalPages-1
	if p.HasPrev {
		p.PrevIndex = page - 1
	}
	if p.HasNext {
		p.NextIndex = page + 1
	}
	return p
}

// Caption renders the "showing N of T" line under a table.
func Caption(limit, rows, totalRows int) string {
	shown := rows
	if limit > 0 && limit < shown {
		shown = limit
	}
	return fmt.Sprintf("Menampilkan %d dari %d data", shown, totalRows)
}
