package seed

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ifnexus/internal/db"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
)

const fixture = `
usuarios:
  - nome: Admin IF
    email: admin@if.edu.br
    senha: "123"
    tipo_usuario: Aluno
    campus: IF Central
  - nome: João da Silva
    email: joao@if.edu.br
    senha: "123"
    tipo_usuario: Aluno
    matricula: "202312345"
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, f.Users, 2)
	assert.Equal(t, "202312345", f.Users[1].Enrollment)

	_, err = Parse(strings.NewReader("usuarios:\n  - nome: X\n    email: x@if.edu.br\n    senha: a\n    idade: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Parse(strings.NewReader("usuarios:\n  - nome: X\n    senha: a\n"))
	assert.Error(t, err, "email is required")

	f, err = Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Users)
}

func TestUsers_SkipsExistingEmails(t *testing.T) {
	gormDB, err := db.Open("sqlite", filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	created, skipped, err := Users(ctx, repo, f.Users)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Zero(t, skipped)

	created, skipped, err = Users(ctx, repo, f.Users)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 2, skipped)

	user, err := repo.FindByEmail(ctx, "joao@if.edu.br")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("123")))
}
