package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ifnexus/internal/db"
	"ifnexus/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	gormDB, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, gormDB.Create(user).Error)
	return user
}

func seedProject(t *testing.T, gormDB *gorm.DB, owner uint, title, course, kind string, likes int) *model.Project {
	t.Helper()
	project := &model.Project{Title: title, Description: "descricao de " + title, Course: course, Type: kind, UserID: owner, Likes: likes}
	require.NoError(t, gormDB.Omit("Owner").Create(project).Error)
	return project
}
