package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}
)

func TestLocalStore_PutAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/")
	ctx := context.Background()

	key := ProjectDocumentKey("Horta", "plano.pdf")
	require.NoError(t, store.Put(ctx, key, bytes.NewReader(pdfBytes), "application/pdf"))

	got, err := os.ReadFile(filepath.Join(dir, "uploads", "projetos", "horta", "pdfs", "plano.pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)
	assert.Equal(t, "/uploads/projetos/horta/pdfs/plano.pdf", store.URL(key))

	require.NoError(t, store.RemovePrefix(ctx, ProjectDir("Horta")))
	_, err = os.Stat(filepath.Join(dir, "uploads", "projetos", "horta"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.RemovePrefix(ctx, ProjectDir("Nunca existiu")))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/")
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "../outside.txt", bytes.NewReader(nil), ""))
	assert.Error(t, store.RemovePrefix(ctx, ""))
}

func TestDetect(t *testing.T) {
	pdf := File{Name: "a.pdf", Content: bytes.NewReader(pdfBytes)}
	mtype, err := Detect(pdf)
	require.NoError(t, err)
	assert.True(t, IsPDF(mtype))
	assert.False(t, IsImage(mtype))

	rest := new(bytes.Buffer)
	_, err = rest.ReadFrom(pdf.Content)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, rest.Bytes(), "content is rewound after sniffing")

	mtype, err = Detect(File{Name: "a.png", Content: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.True(t, IsImage(mtype))
	assert.False(t, IsPDF(mtype))

	mtype, err = Detect(File{Name: "a.txt", Content: bytes.NewReader([]byte("apenas texto"))})
	require.NoError(t, err)
	assert.False(t, IsImage(mtype))
	assert.False(t, IsPDF(mtype))
}
