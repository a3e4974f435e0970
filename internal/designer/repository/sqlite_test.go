package repository

import (
	"context"
	"path/filepath"
	"testing"

	"enclosure-designer/internal/designer/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "designs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	params := models.DefaultParameters()
	saved, err := repo.Save(ctx, &models.Design{
		Unit:       params.Unit,
		Parameters: params,
		Assembly:   []byte(`{"features":[]}`),
		NetVolume:  2.1,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)
	assert.Equal(t, params, saved.Parameters)
	assert.JSONEq(t, `{"features":[]}`, string(saved.Assembly))

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestRepository_GetUnknown(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		d, err := repo.Save(ctx, &models.Design{
			Unit:       "mm",
			Parameters: models.DefaultParameters(),
			Assembly:   []byte(`{}`),
		})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestRepository_InitIsIdempotent(t *testing.T) {
	repo := newRepo(t)
	assert.NoError(t, repo.Init(context.Background()))
}

func TestRepository_DuplicateID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	d := &models.Design{ID: "fixed", Unit: "in", Parameters: models.DefaultParameters(), Assembly: []byte(`{}`)}
	_, err := repo.Save(ctx, d)
	require.NoError(t, err)

	_, err = repo.Save(ctx, d)
	assert.Error(t, err)
}
