package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Email ou senha inválidos.")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("Este email já está cadastrado.")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("As senhas não coincidem.")
	// ErrUserNotFound is returned when a profile does not exist.
	ErrUserNotFound = errors.New("Usuário não encontrado")

	// ErrLoginRequired is returned when a route needs a session.
	ErrLoginRequired = errors.New("Faça login para continuar.")
	// ErrSUAPRequired is returned when a route needs a SUAP-verified role.
	ErrSUAPRequired = errors.New("Autentique sua conta com o SUAP por favor")
	// ErrNoPermission is returned when the caller neither owns nor co-authors a project.
	ErrNoPermission = errors.New("Você não tem permissão para alterar este projeto.")

	// ErrSUAPNoCode is returned when the SUAP callback carries no code.
	ErrSUAPNoCode = errors.New("Erro: nenhum código recebido do SUAP.")
	// ErrSUAPState is returned when the callback state does not match.
	ErrSUAPState = errors.New("Erro: sessão de login do SUAP inválida.")
	// ErrSUAPTokenExchange is returned when SUAP refuses the authorization code.
	ErrSUAPTokenExchange = errors.New("Erro ao obter token do SUAP.")
	// ErrSUAPProfile is returned when the SUAP profile cannot be fetched.
	ErrSUAPProfile = errors.New("Erro ao buscar dados do usuário no SUAP.")

	// ErrProjectNotFound is returned when a project does not exist.
	ErrProjectNotFound = errors.New("Projeto não encontrado.")
	// ErrMissingRequiredFields is returned when titulo, descricao or curso is blank.
	ErrMissingRequiredFields = errors.New("Preencha todos os campos obrigatórios!")
	// ErrInvalidDocument is returned when the uploaded document is not a PDF.
	ErrInvalidDocument = errors.New("O arquivo do projeto deve ser um PDF.")
	// ErrInvalidImage is returned when an uploaded image is not an image.
	ErrInvalidImage = errors.New("As imagens do projeto devem ser arquivos de imagem.")
	// ErrInvalidAuthor is returned when a co-author id does not match a user.
	ErrInvalidAuthor = errors.New("Coautor informado não existe.")
	// ErrProjectSave wraps storage and database failures while saving a
	// project. The transaction is rolled back.
	ErrProjectSave = errors.New("Erro ao salvar projeto.")
	// ErrProjectDelete wraps database failures while deleting a project.
	ErrProjectDelete = errors.New("Erro ao excluir projeto.")

	// ErrEmptyComment is returned for blank comments.
	ErrEmptyComment = errors.New("Comentário vazio. Escreva algo antes de enviar.")
	// ErrNoPhoto is returned when the photo upload is missing.
	ErrNoPhoto = errors.New("Nenhuma imagem enviada.")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Redirect   string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// WithRedirect sets the page the client should navigate to.
func (e *HTTPError) WithRedirect(path string) *HTTPError {
	e.Redirect = path
	return e
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:    e.Message,
		Code:     e.Code,
		Redirect: e.Redirect,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordMismatch.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND").WithRedirect("/")
	case errors.Is(err, ErrLoginRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrLoginRequired.Error(), "LOGIN_REQUIRED").WithRedirect("/login")
	case errors.Is(err, ErrSUAPRequired):
		return NewHTTPError(http.StatusForbidden, ErrSUAPRequired.Error(), "SUAP_REQUIRED").WithRedirect("/meu_perfil")
	case errors.Is(err, ErrNoPermission):
		return NewHTTPError(http.StatusForbidden, ErrNoPermission.Error(), "NO_PERMISSION").WithRedirect("/meus_projetos")
	case errors.Is(err, ErrSUAPNoCode):
		return NewHTTPError(http.StatusBadRequest, ErrSUAPNoCode.Error(), "SUAP_NO_CODE")
	case errors.Is(err, ErrSUAPState):
		return NewHTTPError(http.StatusBadRequest, ErrSUAPState.Error(), "SUAP_INVALID_STATE")
	case errors.Is(err, ErrSUAPTokenExchange):
		return NewHTTPError(http.StatusBadGateway, ErrSUAPTokenExchange.Error(), "SUAP_TOKEN_FAILED")
	case errors.Is(err, ErrSUAPProfile):
		return NewHTTPError(http.StatusBadGateway, ErrSUAPProfile.Error(), "SUAP_PROFILE_FAILED")
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProjectNotFound.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrMissingRequiredFields):
		return NewHTTPError(http.StatusBadRequest, ErrMissingRequiredFields.Error(), "MISSING_REQUIRED_FIELDS")
	case errors.Is(err, ErrInvalidDocument):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidDocument.Error(), "INVALID_DOCUMENT")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidImage.Error(), "INVALID_IMAGE")
	case errors.Is(err, ErrInvalidAuthor):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidAuthor.Error(), "INVALID_AUTHOR")
	case errors.Is(err, ErrProjectSave):
		return NewHTTPError(http.StatusInternalServerError, ErrProjectSave.Error(), "PROJECT_SAVE_FAILED")
	case errors.Is(err, ErrProjectDelete):
		return NewHTTPError(http.StatusInternalServerError, ErrProjectDelete.Error(), "PROJECT_DELETE_FAILED")
	case errors.Is(err, ErrEmptyComment):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyComment.Error(), "EMPTY_COMMENT")
	case errors.Is(err, ErrNoPhoto):
		return NewHTTPError(http.StatusBadRequest, ErrNoPhoto.Error(), "NO_PHOTO")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
