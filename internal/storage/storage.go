package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"ifnexus/internal/config"
)

// Store persists uploaded files under slash separated keys such as
// "uploads/projetos/<slug>/pdfs/<name>".
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// RemovePrefix deletes every object under prefix. A missing prefix is not an error.
	RemovePrefix(ctx context.Context, prefix string) error
	// URL returns the public address of a stored key.
	URL(key string) string
}

// File is an upload received from a form.
type File struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

const (
	projectsRoot = "uploads/projetos"
	usersRoot    = "uploads/users"
)

// ProjectDir is the folder holding a project's uploads.
func ProjectDir(title string) string {
	return path.Join(projectsRoot, ProjectSlug(title))
}

// ProjectDocumentKey is where a project's PDF is stored.
func ProjectDocumentKey(title, filename string) string {
	return path.Join(ProjectDir(title), "pdfs", SecureFilename(filename))
}

// ProjectImageKey is where a project image is stored.
func ProjectImageKey(title, filename string) string {
	return path.Join(ProjectDir(title), "imagens", SecureFilename(filename))
}

// UserPhotoKey is where a user's profile photo is stored.
func UserPhotoKey(userID uint) string {
	return fmt.Sprintf("%s/%d.jpg", usersRoot, userID)
}

// Detect sniffs the content type of f and rewinds it.
func Detect(f File) (*mimetype.MIME, error) {
	mtype, err := mimetype.DetectReader(f.Content)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", f.Name, err)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", f.Name, err)
	}
	return mtype, nil
}

// IsPDF reports whether the sniffed type is a PDF document.
func IsPDF(mtype *mimetype.MIME) bool {
	return mtype != nil && mtype.Is("application/pdf")
}

// IsImage reports whether the sniffed type is an image.
func IsImage(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// New builds the store selected by UPLOAD_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.UploadBackend {
	case "", "local":
		return NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL), nil
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.UploadBaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", cfg.UploadBackend)
	}
}

func joinURL(base, key string) string {
	if base == "" {
		base = "/"
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
