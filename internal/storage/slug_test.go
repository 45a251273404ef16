package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"relatório final.pdf", "relatorio_final.pdf"},
		{"  foto (1).png ", "foto_1.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestSecureFilename_EmptyGetsRandomName(t *testing.T) {
	a, b := SecureFilename("???"), SecureFilename("???")
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestProjectSlug(t *testing.T) {
	assert.Equal(t, "robo-seguidor-de-linha", ProjectSlug("Robô Seguidor de Linha"))
	assert.Equal(t, "projeto", ProjectSlug("???"))
	assert.Equal(t, ProjectSlug("Horta"), ProjectSlug("horta"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "uploads/projetos/horta-urbana/pdfs/plano.pdf", ProjectDocumentKey("Horta Urbana", "plano.pdf"))
	assert.Equal(t, "uploads/projetos/horta-urbana/imagens/capa_1.jpg", ProjectImageKey("Horta Urbana", "capa 1.jpg"))
	assert.Equal(t, "uploads/projetos/horta-urbana", ProjectDir("Horta Urbana"))
	assert.Equal(t, "uploads/users/42.jpg", UserPhotoKey(42))
}
