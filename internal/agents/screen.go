package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/events"
)

// Gateway is the backend the screen reads and mutates agents through.
type Gateway interface {
	ListAgents(ctx context.Context, token string) ([]domain.Agent, error)
	RegisterAgent(ctx context.Context, reg domain.Registration) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, token string, id domain.ID, update domain.AgentUpdate) error
	DeleteAgent(ctx context.Context, token string, id domain.ID) error
}

// PageStore persists the current page number between requests.
type PageStore interface {
	CurrentPage(ctx context.Context, scope string) (int, bool, error)
	SaveCurrentPage(ctx context.Context, scope string, page int) error
	ClearCurrentPage(ctx context.Context, scope string) error
}

// Publisher receives audit events for successful mutations.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Modal names; the template switches on these.
const (
	ModalNone    = ""
	ModalAdd     = "add"
	ModalActions = "actions"
	ModalEdit    = "edit"
)

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("action already in progress")
	// ErrInvalid is returned when form validation blocks a submission.
	ErrInvalid = errors.New("form has errors")
	// ErrNoSelection is returned when an action needs a selected agent.
	ErrNoSelection = errors.New("no agent selected")
	// ErrUnknownAgent is returned when selecting an id that is not listed.
	ErrUnknownAgent = errors.New("agent not in list")
)

// Toast is a one-shot notification.
type Toast struct {
	Kind    string
	Message string
}

// FormState holds the values echoed back into the open form. Passwords are
// never echoed.
type FormState struct {
	Name     string
	Email    string
	Category string
	Errors   FieldErrors
}

// Owner identifies whose screen this is.
type Owner struct {
	SessionID string
	Token     string
	User      domain.User
}

// PageScope keys the saved page number. It is the user when known, so a new
// session or another console instance resumes on the same page.
func (o Owner) PageScope() string {
	if o.User.ID != "" {
		return "user:" + o.User.ID.String()
	}
	return "session:" + o.SessionID
}

// Deps are the collaborators of a screen.
type Deps struct {
	Gateway Gateway
	Pages   PageStore
	Events  Publisher
	Logger  *zap.Logger
}

// Screen is the agent management view state for one session. Every
// transition goes through a method; network calls run without the lock
// held, with an in-progress flag set for their duration.
type Screen struct {
	mu     sync.Mutex
	deps   Deps
	owner  Owner
	logger *zap.Logger

	agents   []domain.Agent
	loaded   bool
	selected *domain.Agent
	modal    string
	confirm  bool
	search   string
	page     int
	form     FormState
	toasts   []Toast

	loading  bool
	adding   bool
	editing  bool
	deleting bool
}

var stripPolicy = bluemonday.StrictPolicy()

// NewScreen creates a screen and restores the saved page number.
func NewScreen(ctx context.Context, deps Deps, owner Owner) *Screen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{
		deps:   deps,
		owner:  owner,
		logger: logger.Named("agents").With(zap.String("session", owner.SessionID)),
		page:   1,
	}
	if deps.Pages != nil {
		page, ok, err := deps.Pages.CurrentPage(ctx, owner.PageScope())
		switch {
		case err != nil:
			s.logger.Warn("restore page failed", zap.Error(err))
		case ok && page > 0:
			s.page = page
		}
	}
	return s
}

// Loaded reports whether the list has been fetched successfully once.
func (s *Screen) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load fetches the agent list. Loading is reported for exactly the
// duration of the fetch. On failure the previous list is kept.
func (s *Screen) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.loading = true
	s.mu.Unlock()

	list, err := s.deps.Gateway.ListAgents(ctx, s.owner.Token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Error("load agents", zap.Error(err))
		s.notify(ToastError, "Failed to load agents.")
		return err
	}
	s.agents = list
	s.loaded = true
	return nil
}

// Search sets the filter term and returns to the first page.
func (s *Screen) Search(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
	s.setPage(ctx, 1)
}

// GoToPage moves to page n, clamped to the available pages.
func (s *Screen) GoToPage(ctx context.Context, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPage(ctx, ClampPage(n, s.totalPages()))
}

// NextPage advances one page unless already on the last.
func (s *Screen) NextPage(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.totalPages()
	if current := s.currentPage(); current < total {
		s.setPage(ctx, current+1)
	}
}

// PrevPage goes back one page unless already on the first.
func (s *Screen) PrevPage(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current := s.currentPage(); current > 1 {
		s.setPage(ctx, current-1)
	}
}

// OpenAdd shows an empty create form.
func (s *Screen) OpenAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalAdd
	s.confirm = false
	s.form = FormState{}
}

// CloseModal dismisses whatever modal is open and resets the form.
func (s *Screen) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalNone
	s.confirm = false
	s.selected = nil
	s.form = FormState{}
}

// SubmitAdd validates the form and registers the agent. Validation
// failures never reach the backend.
func (s *Screen) SubmitAdd(ctx context.Context, form AddForm) error {
	form.Normalize()

	s.mu.Lock()
	if s.adding {
		s.mu.Unlock()
		return ErrBusy
	}
	s.modal = ModalAdd
	s.form = FormState{Name: form.Name, Email: form.Email, Category: form.Category}
	if errs := form.Validate(); errs != nil {
		s.form.Errors = errs
		s.mu.Unlock()
		return ErrInvalid
	}
	s.adding = true
	s.mu.Unlock()

	agent, err := s.deps.Gateway.RegisterAgent(ctx, form.Registration())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adding = false
	if err != nil {
		s.logger.Error("add agent", zap.Error(err))
		s.form.Errors = serverFieldErrors(err)
		s.notify(ToastError, "Failed to add agent.")
		return err
	}

	created := *agent
	if created.Name == "" {
		created.Name = form.Name
	}
	s.agents = append(s.agents, created)
	s.modal = ModalNone
	s.form = FormState{}
	s.notify(ToastSuccess, fmt.Sprintf("%s has been added successfully!", created.Name))
	s.publish(ctx, events.EventAgentRegistered, created.ID, events.AgentRegisteredPayload{
		Name:     created.Name,
		Email:    created.Email,
		Category: created.Category,
	})
	return nil
}

// Select picks an agent from the list and opens the actions modal.
func (s *Screen) Select(id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			agent := s.agents[i]
			s.selected = &agent
			s.modal = ModalActions
			s.confirm = false
			return nil
		}
	}
	return ErrUnknownAgent
}

// OpenEdit switches from the actions modal to the edit form, prefilled
// with the selected agent.
func (s *Screen) OpenEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return ErrNoSelection
	}
	s.form = FormState{
		Name:     s.selected.Name,
		Email:    s.selected.Email,
		Category: s.selected.Category,
	}
	s.modal = ModalEdit
	s.confirm = false
	return nil
}

// SubmitEdit validates and sends the edit, then patches the local entry.
func (s *Screen) SubmitEdit(ctx context.Context, form EditForm) error {
	form.Normalize()

	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return ErrNoSelection
	}
	if s.editing {
		s.mu.Unlock()
		return ErrBusy
	}
	target := *s.selected
	s.form = FormState{Name: form.Name, Email: form.Email, Category: form.Category}
	if errs := form.Validate(); errs != nil {
		s.form.Errors = errs
		s.mu.Unlock()
		return ErrInvalid
	}
	s.editing = true
	s.mu.Unlock()

	update := form.Update()
	err := s.deps.Gateway.UpdateAgent(ctx, s.owner.Token, target.ID, update)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
	if err != nil {
		s.logger.Error("edit agent", zap.Error(err), zap.String("agent_id", target.ID.String()))
		s.form.Errors = serverFieldErrors(err)
		s.notify(ToastError, "Failed to edit agent.")
		return err
	}

	for i := range s.agents {
		if s.agents[i].ID == target.ID {
			s.agents[i] = update.Apply(s.agents[i])
		}
	}
	s.modal = ModalNone
	s.selected = nil
	s.form = FormState{}
	s.notify(ToastSuccess, fmt.Sprintf("%s has been updated successfully!", update.Name))
	s.publish(ctx, events.EventAgentUpdated, target.ID, events.AgentUpdatedPayload{
		Before: domain.AgentUpdate{Name: target.Name, Email: target.Email, Category: target.Category},
		After:  update,
	})
	return nil
}

// RequestDelete asks for confirmation before deleting the selected agent.
func (s *Screen) RequestDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return ErrNoSelection
	}
	s.confirm = true
	return nil
}

// CancelDelete dismisses the confirmation and keeps the actions modal.
func (s *Screen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = false
}

// ConfirmDelete deletes the selected agent and drops exactly that entry
// from the list once the backend has accepted it.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.deleting {
		s.mu.Unlock()
		return ErrBusy
	}
	if !s.confirm || s.selected == nil {
		s.mu.Unlock()
		return ErrNoSelection
	}
	target := *s.selected
	s.confirm = false
	s.deleting = true
	s.mu.Unlock()

	err := s.deps.Gateway.DeleteAgent(ctx, s.owner.Token, target.ID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleting = false
	if err != nil {
		s.logger.Error("delete agent", zap.Error(err), zap.String("agent_id", target.ID.String()))
		s.notify(ToastError, "Failed to delete agent.")
		return err
	}

	kept := s.agents[:0:0]
	for _, a := range s.agents {
		if a.ID != target.ID {
			kept = append(kept, a)
		}
	}
	s.agents = kept
	s.modal = ModalNone
	s.selected = nil
	s.confirm = false
	s.notify(ToastSuccess, fmt.Sprintf("%s has been deleted successfully!", target.Name))
	s.publish(ctx, events.EventAgentDeleted, target.ID, events.AgentDeletedPayload{
		Name:  target.Name,
		Email: target.Email,
	})
	return nil
}

// Teardown forgets the saved page; called on logout.
func (s *Screen) Teardown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deps.Pages != nil {
		if err := s.deps.Pages.ClearCurrentPage(ctx, s.owner.PageScope()); err != nil {
			s.logger.Warn("clear page failed", zap.Error(err))
		}
	}
	s.page = 1
	s.modal = ModalNone
	s.selected = nil
	s.confirm = false
	s.form = FormState{}
	s.toasts = nil
}

func (s *Screen) filtered() []domain.Agent {
	return Filter(s.agents, s.search)
}

func (s *Screen) totalPages() int {
	return TotalPages(len(s.filtered()), PageSize)
}

func (s *Screen) currentPage() int {
	return ClampPage(s.page, s.totalPages())
}

func (s *Screen) setPage(ctx context.Context, page int) {
	s.page = page
	if s.deps.Pages == nil {
		return
	}
	if err := s.deps.Pages.SaveCurrentPage(ctx, s.owner.PageScope(), page); err != nil {
		s.logger.Warn("save page failed", zap.Error(err))
	}
}

func (s *Screen) notify(kind, message string) {
	s.toasts = append(s.toasts, Toast{Kind: kind, Message: message})
}

func (s *Screen) publish(ctx context.Context, eventType events.EventType, agentID domain.ID, payload interface{}) {
	if s.deps.Events == nil {
		return
	}
	actor := events.Actor{UserID: s.owner.User.ID, Role: s.owner.User.Role}
	if err := s.deps.Events.Publish(ctx, events.NewEvent(eventType, agentID, actor, payload)); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(eventType)), zap.Error(err))
	}
}

type fieldMessager interface {
	FieldMessages() map[string][]string
}

// serverFieldErrors turns backend field errors into form errors, stripping
// any markup the backend put in its messages.
func serverFieldErrors(err error) FieldErrors {
	var fm fieldMessager
	if !errors.As(err, &fm) {
		return nil
	}
	fields := fm.FieldMessages()
	if len(fields) == 0 {
		return nil
	}
	out := make(FieldErrors, len(fields))
	for field, msgs := range fields {
		out[field] = stripPolicy.Sanitize(strings.Join(msgs, " "))
	}
	return out
}
