package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"coffeeapi/internal/database/migration"
	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *CoffeeSQLite {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "coffee.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.EnsureMigrated(context.Background(), db, migration.SQLite, zaptest.NewLogger(t), "test"))
	return NewCoffeeSQLite(db)
}

func TestCoffeeSQLite_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.Save(ctx, &model.Coffee{ID: "a", Name: "Cafe Cereze"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &model.Coffee{ID: "b", Name: "Cafe Ganador"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Cafe Cereze", got.Name)

	ok, err := repo.ExistsByID(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	// Upsert keeps the original position.
	_, err = repo.Save(ctx, &model.Coffee{ID: "a", Name: "Cafe Roma"})
	require.NoError(t, err)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Coffee{{ID: "a", Name: "Cafe Roma"}, {ID: "b", Name: "Cafe Ganador"}}, all)

	require.NoError(t, repo.DeleteByID(ctx, "a"))
	require.NoError(t, repo.DeleteByID(ctx, "a"))

	_, err = repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ok, err = repo.ExistsByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Ping(ctx))
}
