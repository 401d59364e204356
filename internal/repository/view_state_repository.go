package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

// ViewStateRepository stores the small pieces of console state that outlive
// a single request: the current page of the agent list and the ids of
// tickets a user has opened. Writes are last-writer-wins.
type ViewStateRepository interface {
	CurrentPage(ctx context.Context, scope string) (int, bool, error)
	SaveCurrentPage(ctx context.Context, scope string, page int) error
	ClearCurrentPage(ctx context.Context, scope string) error
	ViewedTicketIDs(ctx context.Context, owner string) ([]domain.ID, error)
	MarkTicketViewed(ctx context.Context, owner string, id domain.ID) error
	Ping(ctx context.Context) error
}

type memoryPage struct {
	page    int
	expires time.Time
}

type memoryViewStateRepository struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	pages  map[string]memoryPage
	viewed map[string][]domain.ID
}

// NewMemoryViewStateRepository keeps view state in process memory. A zero
// ttl keeps pages until cleared.
func NewMemoryViewStateRepository(ttl time.Duration) ViewStateRepository {
	return &memoryViewStateRepository{
		ttl:    ttl,
		now:    time.Now,
		pages:  make(map[string]memoryPage),
		viewed: make(map[string][]domain.ID),
	}
}

func (r *memoryViewStateRepository) CurrentPage(_ context.Context, scope string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[scope]
	if !ok {
		return 0, false, nil
	}
	if !p.expires.IsZero() && r.now().After(p.expires) {
		return 0, false, nil
	}
	return p.page, true, nil
}

func (r *memoryViewStateRepository) SaveCurrentPage(_ context.Context, scope string, page int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := memoryPage{page: page}
	if r.ttl > 0 {
		entry.expires = r.now().Add(r.ttl)
	}
	r.pages[scope] = entry
	return nil
}

func (r *memoryViewStateRepository) ClearCurrentPage(_ context.Context, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, scope)
	return nil
}

func (r *memoryViewStateRepository) ViewedTicketIDs(_ context.Context, owner string) ([]domain.ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.viewed[owner]
	out := make([]domain.ID, len(ids))
	copy(out, ids)
	return out, nil
}

func (r *memoryViewStateRepository) MarkTicketViewed(_ context.Context, owner string, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.viewed[owner] {
		if existing == id {
			return nil
		}
	}
	r.viewed[owner] = append(r.viewed[owner], id)
	return nil
}

func (r *memoryViewStateRepository) Ping(context.Context) error {
	return nil
}
