package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/config"
)

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".sql"), name)
	}
}

func TestMigrationsCreateViewStateTables(t *testing.T) {
	content, err := fs.ReadFile(migrationFiles, "migrations/0001_console_view_state.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "console_pages")
	assert.Contains(t, string(content), "console_viewed_tickets")
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestPingWithoutPool(t *testing.T) {
	var p *Postgres
	assert.Error(t, p.Ping(context.Background()))
	assert.Error(t, (&Postgres{}).Ping(context.Background()))
	assert.NoError(t, p.Migrate(context.Background(), zap.NewNop()))
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestRedisUnreachableIsNotFatal(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	require.NotNil(t, r)
	defer r.Close()
	assert.Error(t, r.Ping(context.Background()))

	var nilRedis *Redis
	assert.Error(t, nilRedis.Ping(context.Background()))
}
