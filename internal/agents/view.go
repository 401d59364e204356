package agents

import "github.com/Jojo-not/Ticketing/internal/domain"

// View is the render-ready projection of a Screen.
type View struct {
	Loading bool
	Loaded  bool
	Search  string

	Total    int
	Filtered int
	Rows     []domain.Agent
	Empty    bool

	Page           int
	TotalPages     int
	Window         []int
	HasPrev        bool
	HasNext        bool
	ShowPagination bool

	Modal         string
	ConfirmDelete bool
	Selected      *domain.Agent
	Form          FormState

	Adding   bool
	Editing  bool
	Deleting bool

	Toasts     []Toast
	Categories []string
}

// View derives the visible page from the raw state and hands over the
// pending toasts, which are shown once.
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filtered()
	total := TotalPages(len(filtered), PageSize)
	page := ClampPage(s.page, total)

	rows := PageRows(filtered, page, PageSize)
	rowsCopy := make([]domain.Agent, len(rows))
	copy(rowsCopy, rows)

	var selected *domain.Agent
	if s.selected != nil {
		agent := *s.selected
		selected = &agent
	}

	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}

	toasts := s.toasts
	s.toasts = nil

	return View{
		Loading:        s.loading,
		Loaded:         s.loaded,
		Search:         s.search,
		Total:          len(s.agents),
		Filtered:       len(filtered),
		Rows:           rowsCopy,
		Empty:          len(filtered) == 0,
		Page:           page,
		TotalPages:     total,
		Window:         PageWindow(page, total, WindowWidth),
		HasPrev:        page > 1,
		HasNext:        page < total,
		ShowPagination: len(filtered) >= PaginationThreshold,
		Modal:          s.modal,
		ConfirmDelete:  s.confirm,
		Selected:       selected,
		Form:           s.form,
		Adding:         s.adding,
		Editing:        s.editing,
		Deleting:       s.deleting,
		Toasts:         toasts,
		Categories:     categories,
	}
}
