package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

type postgresViewStateRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresViewStateRepository instantiates repository. Tables come from
// the persistence migrations.
func NewPostgresViewStateRepository(pool *pgxpool.Pool, ttl time.Duration) ViewStateRepository {
	return &postgresViewStateRepository{pool: pool, ttl: ttl}
}

func (r *postgresViewStateRepository) CurrentPage(ctx context.Context, scope string) (int, bool, error) {
	const query = `
        SELECT page FROM console_pages
        WHERE scope=$1 AND (expires_at IS NULL OR expires_at > NOW())`
	var page int
	if err := r.pool.QueryRow(ctx, query, scope).Scan(&page); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return page, true, nil
}

func (r *postgresViewStateRepository) SaveCurrentPage(ctx context.Context, scope string, page int) error {
	const query = `
        INSERT INTO console_pages (scope, page, expires_at, updated_at)
        VALUES ($1,$2,$3,NOW())
        ON CONFLICT (scope) DO UPDATE SET page=EXCLUDED.page, expires_at=EXCLUDED.expires_at, updated_at=NOW()`
	var expires *time.Time
	if r.ttl > 0 {
		at := time.Now().Add(r.ttl)
		expires = &at
	}
	_, err := r.pool.Exec(ctx, query, scope, page, expires)
	return err
}

func (r *postgresViewStateRepository) ClearCurrentPage(ctx context.Context, scope string) error {
	const query = `DELETE FROM console_pages WHERE scope=$1`
	_, err := r.pool.Exec(ctx, query, scope)
	return err
}

func (r *postgresViewStateRepository) ViewedTicketIDs(ctx context.Context, owner string) ([]domain.ID, error) {
	const query = `
        SELECT ticket_id FROM console_viewed_tickets
        WHERE owner=$1 ORDER BY viewed_at, ticket_id`
	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, domain.ID(id))
	}
	return ids, rows.Err()
}

func (r *postgresViewStateRepository) MarkTicketViewed(ctx context.Context, owner string, id domain.ID) error {
	const query = `
        INSERT INTO console_viewed_tickets (owner, ticket_id)
        VALUES ($1,$2)
        ON CONFLICT (owner, ticket_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, owner, id.String())
	return err
}

func (r *postgresViewStateRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
