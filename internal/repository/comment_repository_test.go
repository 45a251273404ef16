package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifnexus/internal/model"
)

func TestCommentRepository_NewestFirst(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewCommentRepository(gormDB)
	ctx := context.Background()

	user := seedUser(t, gormDB, "Ana", "ana@example.com")
	project := seedProject(t, gormDB, user.ID, "P", "Informática", "Pesquisa", 0)

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &model.Comment{Content: "primeiro", UserID: user.ID, ProjectID: project.ID, CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Comment{Content: "segundo", UserID: user.ID, ProjectID: project.ID, CreatedAt: now}))

	comments, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "segundo", comments[0].Content)
	require.NotNil(t, comments[0].User)
	assert.Equal(t, "Ana", comments[0].User.Name)
}
