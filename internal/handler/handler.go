package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"ifnexus/internal/auth"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/storage"
)

// MessageResponse is a plain confirmation, optionally with a warning.
type MessageResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// fail renders a service error. Unexpected errors are logged with the
// request id before the generic 500 is returned.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return auth.Reject(err)
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid id")
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, returning def when it is
// missing or malformed.
func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return n
}

// uploads tracks the multipart files opened for one request.
type uploads struct {
	files []multipart.File
}

func (u *uploads) open(fh *multipart.FileHeader) (storage.File, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.File{}, err
	}
	u.files = append(u.files, f)
	return storage.File{Name: fh.Filename, Size: fh.Size, Content: f}, nil
}

func (u *uploads) Close() {
	for _, f := range u.files {
		_ = f.Close()
	}
}

// formFile returns the named upload, or nil when the field is empty.
func (u *uploads) formFile(form *multipart.Form, field string) (*storage.File, error) {
	if form == nil || len(form.File[field]) == 0 || form.File[field][0].Filename == "" {
		return nil, nil
	}
	f, err := u.open(form.File[field][0])
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// formFiles returns every non-empty upload under the named field.
func (u *uploads) formFiles(form *multipart.Form, field string) ([]storage.File, error) {
	if form == nil {
		return nil, nil
	}
	var files []storage.File
	for _, fh := range form.File[field] {
		if fh.Filename == "" {
			continue
		}
		f, err := u.open(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// multipartForm returns the parsed multipart form, or nil for urlencoded and
// JSON bodies.
func multipartForm(c echo.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return form, err
}
