package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		redirect string
	}{
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
		{"duplicate email", ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS", ""},
		{"wrapped suap requirement", fmt.Errorf("guard: %w", ErrSUAPRequired), http.StatusForbidden, "SUAP_REQUIRED", "/meu_perfil"},
		{"no permission", ErrNoPermission, http.StatusForbidden, "NO_PERMISSION", "/meus_projetos"},
		{"token exchange", ErrSUAPTokenExchange, http.StatusBadGateway, "SUAP_TOKEN_FAILED", ""},
		{"project save", fmt.Errorf("%w: %w", ErrProjectSave, errors.New("no such table: links")), http.StatusInternalServerError, "PROJECT_SAVE_FAILED", ""},
		{"project delete", fmt.Errorf("%w: %w", ErrProjectDelete, errors.New("deadlock")), http.StatusInternalServerError, "PROJECT_DELETE_FAILED", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.redirect, httpErr.ToErrorResponse().Redirect)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestMapErrorToHTTP_ProjectSaveShowsMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("%w: %w", ErrProjectSave, errors.New("SQL logic error")))
	assert.Equal(t, "Erro ao salvar projeto.", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "SQL")
}
