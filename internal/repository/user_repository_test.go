package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ifnexus/internal/model"
)

func TestUserRepository_SearchByName(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	seedUser(t, gormDB, "Maria Clara", "maria@example.com")
	seedUser(t, gormDB, "Mariana Alves", "mariana@example.com")
	seedUser(t, gormDB, "João", "joao@example.com")

	users, err := repo.SearchByName(ctx, "MARI", 8)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Maria Clara", users[0].Name)

	users, err = repo.SearchByName(ctx, "mari", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_Exists(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	user := seedUser(t, gormDB, "Ana", "ana@example.com")
	exists, err := repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, user.ID))
	exists, err = repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_MergeAccounts(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	old := seedUser(t, gormDB, "Local", "local@example.com")
	federated := seedUser(t, gormDB, "Federada", "suap@ifrn.edu.br")
	owner := seedUser(t, gormDB, "Dono", "dono@example.com")

	shared := seedProject(t, gormDB, owner.ID, "Compartilhado", "Informática", "Pesquisa", 0)
	single := seedProject(t, gormDB, owner.ID, "Único", "Informática", "Pesquisa", 0)
	authored := seedProject(t, gormDB, old.ID, "Do antigo", "Informática", "Pesquisa", 0)

	require.NoError(t, gormDB.Create(&[]model.Like{
		{UserID: old.ID, ProjectID: shared.ID},
		{UserID: federated.ID, ProjectID: shared.ID},
		{UserID: old.ID, ProjectID: single.ID},
	}).Error)
	require.NoError(t, gormDB.Model(&model.Project{}).Where("id = ?", shared.ID).Update("curtidas", 2).Error)
	require.NoError(t, gormDB.Model(&model.Project{}).Where("id = ?", single.ID).Update("curtidas", 1).Error)
	require.NoError(t, gormDB.Create(&model.Comment{Content: "c", UserID: old.ID, ProjectID: shared.ID}).Error)
	require.NoError(t, gormDB.Create(&model.Author{ProjectID: single.ID, UserID: &old.ID}).Error)

	err := repo.WithTransaction(ctx, func(ctx context.Context, tx UserRepository) error {
		if err := tx.ReassignComments(ctx, old.ID, federated.ID); err != nil {
			return err
		}
		if err := tx.ReassignLikes(ctx, old.ID, federated.ID); err != nil {
			return err
		}
		if err := tx.ReassignProjects(ctx, old.ID, federated.ID); err != nil {
			return err
		}
		if err := tx.ReassignAuthors(ctx, old.ID, federated.ID); err != nil {
			return err
		}
		return tx.Delete(ctx, old.ID)
	})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, old.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var likes []model.Like
	require.NoError(t, gormDB.Where("usuario_id = ?", federated.ID).Order("projeto_id").Find(&likes).Error)
	require.Len(t, likes, 2)

	var counters []model.Project
	require.NoError(t, gormDB.Where("id IN ?", []uint{shared.ID, single.ID}).Order("id").Find(&counters).Error)
	assert.Equal(t, 1, counters[0].Likes)
	assert.Equal(t, 1, counters[1].Likes)

	var comment model.Comment
	require.NoError(t, gormDB.First(&comment).Error)
	assert.Equal(t, federated.ID, comment.UserID)

	moved, err := NewProjectRepository(gormDB).FindByID(ctx, authored.ID)
	require.NoError(t, err)
	assert.Equal(t, federated.ID, moved.UserID)

	var author model.Author
	require.NoError(t, gormDB.First(&author).Error)
	require.NotNil(t, author.UserID)
	assert.Equal(t, federated.ID, *author.UserID)
}

func TestUserRepository_RollbackOnError(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	old := seedUser(t, gormDB, "Local", "local@example.com")
	federated := seedUser(t, gormDB, "Federada", "suap@ifrn.edu.br")
	project := seedProject(t, gormDB, federated.ID, "P", "Informática", "Pesquisa", 0)
	require.NoError(t, gormDB.Create(&model.Comment{Content: "c", UserID: old.ID, ProjectID: project.ID}).Error)

	err := repo.WithTransaction(ctx, func(ctx context.Context, tx UserRepository) error {
		if err := tx.ReassignComments(ctx, old.ID, federated.ID); err != nil {
			return err
		}
		return tx.Delete(ctx, 9999)
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var comment model.Comment
	require.NoError(t, gormDB.First(&comment).Error)
	assert.Equal(t, old.ID, comment.UserID)
}

func TestUserRepository_ReassignAuthorsDropsDuplicates(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	old := seedUser(t, gormDB, "Local", "local@example.com")
	federated := seedUser(t, gormDB, "Federada", "suap@ifrn.edu.br")
	owner := seedUser(t, gormDB, "Dono", "dono@example.com")

	shared := seedProject(t, gormDB, owner.ID, "Compartilhado", "Informática", "Pesquisa", 0)
	single := seedProject(t, gormDB, owner.ID, "Único", "Informática", "Pesquisa", 0)
	require.NoError(t, gormDB.Create(&[]model.Author{
		{ProjectID: shared.ID, UserID: &old.ID},
		{ProjectID: shared.ID, UserID: &federated.ID},
		{ProjectID: single.ID, UserID: &old.ID},
	}).Error)

	require.NoError(t, repo.ReassignAuthors(ctx, old.ID, federated.ID))

	var count int64
	require.NoError(t, gormDB.Model(&model.Author{}).Where("usuario_id = ?", old.ID).Count(&count).Error)
	assert.Zero(t, count)

	for _, projectID := range []uint{shared.ID, single.ID} {
		require.NoError(t, gormDB.Model(&model.Author{}).
			Where("projeto_id = ? AND usuario_id = ?", projectID, federated.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count, "project %d", projectID)
	}
}
