package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ifnexus/internal/auth"
	"ifnexus/internal/service"
)

// UserHandler bundles the user pages.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// MyProjects godoc
// @Summary Projects the current user owns or co-authors
// @Tags users
// @Produce json
// @Success 200 {array} service.ProjectView
// @Failure 401 {object} errors.ErrorResponse
// @Router /meus_projetos [get]
func (h *UserHandler) MyProjects(c echo.Context) error {
	projects, err := h.svc.MyProjects(c.Request().Context(), auth.CurrentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// LikedProjects godoc
// @Summary Projects the current user liked
// @Tags users
// @Produce json
// @Success 200 {array} service.ProjectView
// @Failure 401 {object} errors.ErrorResponse
// @Router /projetoscurtidos [get]
func (h *UserHandler) LikedProjects(c echo.Context) error {
	projects, err := h.svc.LikedProjects(c.Request().Context(), auth.CurrentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// MyProfile godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /meu_perfil [get]
func (h *UserHandler) MyProfile(c echo.Context) error {
	user, err := h.svc.Profile(c.Request().Context(), auth.CurrentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Profile godoc
// @Summary Another user's profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /perfil/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Profile(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePhoto godoc
// @Summary Replace the profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param foto formData file true "Photo"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /alterar_foto [post]
func (h *UserHandler) ChangePhoto(c echo.Context) error {
	form, err := multipartForm(c)
	if err != nil {
		return badRequest("invalid multipart form")
	}
	var up uploads
	defer up.Close()

	photo, err := up.formFile(form, "foto")
	if err != nil {
		return fail(c, err)
	}
	user, err := h.svc.ChangePhoto(c.Request().Context(), auth.CurrentUserID(c), photo)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers godoc
// @Summary Co-author picker search
// @Tags users
// @Produce json
// @Param q query string true "Part of the name"
// @Success 200 {array} service.UserSuggestion
// @Failure 403 {object} errors.ErrorResponse
// @Router /livesearch/usuarios [get]
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.svc.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
