package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeRepository_ToggleCycle(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewLikeRepository(gormDB)
	ctx := context.Background()

	owner := seedUser(t, gormDB, "Dono", "dono@example.com")
	fan := seedUser(t, gormDB, "Fã", "fa@example.com")
	project := seedProject(t, gormDB, owner.ID, "P", "Informática", "Pesquisa", 0)

	require.NoError(t, repo.LockProject(ctx, project.ID))
	assert.ErrorIs(t, repo.LockProject(ctx, 9999), gorm.ErrRecordNotFound)

	exists, err := repo.Exists(ctx, fan.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, fan.ID, project.ID))
	assert.Error(t, repo.Create(ctx, fan.ID, project.ID), "unique index rejects a second like")

	count, err := repo.SyncCounter(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	liked, err := repo.LikedProjectIDs(ctx, fan.ID, []uint{project.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{project.ID: true}, liked)

	require.NoError(t, repo.Delete(ctx, fan.ID, project.ID))
	count, err = repo.SyncCounter(ctx, project.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeRepository_LikedProjectIDsAnonymous(t *testing.T) {
	repo := NewLikeRepository(newTestDB(t))
	liked, err := repo.LikedProjectIDs(context.Background(), 0, []uint{1, 2})
	require.NoError(t, err)
	assert.Empty(t, liked)
}
