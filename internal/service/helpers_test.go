package service

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ifnexus/internal/db"
	"ifnexus/internal/metrics"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
	"ifnexus/internal/storage"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}
)

// testEnv wires the services on a throwaway SQLite database and a local
// upload directory. The cache is disabled.
type testEnv struct {
	db       *gorm.DB
	store    *storage.LocalStore
	metrics  *metrics.Metrics
	projects ProjectService
	listing  ListingService
	social   InteractionService
	users    UserService
}

func newTestEnv(t *testing.T) *testEnv {
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

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	store := storage.NewLocalStore(t.TempDir(), "/")
	m := metrics.New()
	listing := NewListingService(projectRepo, commentRepo, likeRepo, store, nil)

	return &testEnv{
		db:       gormDB,
		store:    store,
		metrics:  m,
		projects: NewProjectService(projectRepo, userRepo, store, listing, m),
		listing:  listing,
		social:   NewInteractionService(projectRepo, commentRepo, likeRepo, listing, m),
		users:    NewUserService(userRepo, projectRepo, likeRepo, store, nil),
	}
}

func (e *testEnv) seedUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "x", Role: model.RoleStudent, Enrollment: "2023" + name[:1]}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedProject(t *testing.T, owner uint, title, course string, likes int) *model.Project {
	t.Helper()
	project := &model.Project{Title: title, Description: "descricao de " + title, Course: course, UserID: owner, Likes: likes}
	require.NoError(t, e.db.Omit("Owner").Create(project).Error)
	return project
}

func pdfFile(name string) *storage.File {
	return &storage.File{Name: name, Size: int64(len(pdfBytes)), Content: bytes.NewReader(pdfBytes)}
}

func pngFile(name string) storage.File {
	return storage.File{Name: name, Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)}
}

func bytesReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
