package agents

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

const (
	// PageSize is the number of rows on one page of the agent list.
	PageSize = 5
	// WindowWidth is the number of page buttons shown at once.
	WindowWidth = 2
	// PaginationThreshold is the filtered count from which the page bar shows.
	PaginationThreshold = 3
)

// Filter returns the agents whose name, email or category contains term,
// ignoring case. Order is preserved; an empty term matches everything.
func Filter(list []domain.Agent, term string) []domain.Agent {
	if term == "" {
		out := make([]domain.Agent, len(list))
		copy(out, list)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]domain.Agent, 0, len(list))
	for _, a := range list {
		for _, field := range []string{a.Name, a.Email, a.Category} {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// TotalPages returns ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page within [1, total]. With no pages the result is 1.
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageRows returns the rows of the 1-based page.
func PageRows(list []domain.Agent, page, size int) []domain.Agent {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(list) {
		return nil
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// PageWindow returns the page numbers to render as buttons: a window of
// width pages centred on current and shifted so it stays inside [1, total].
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return nil
	}

	start := max(1, current-width/2)
	start = max(1, min(start, total-width+1))
	end := min(start+width-1, total)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
