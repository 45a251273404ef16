package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ifnexus/internal/auth"
	"ifnexus/internal/service"
)

// ProjectHandler handles project edition and interactions.
type ProjectHandler struct {
	projects service.ProjectService
	social   service.InteractionService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects service.ProjectService, social service.InteractionService) *ProjectHandler {
	return &ProjectHandler{projects: projects, social: social}
}

// ProjectRequest is the create and edit form. Files travel in the same
// multipart body under arquivo and imagens[].
type ProjectRequest struct {
	Title         string   `form:"titulo" json:"titulo"`
	Subtitle      string   `form:"subtitulo" json:"subtitulo"`
	Description   string   `form:"descricao" json:"descricao"`
	Type          string   `form:"tipo" json:"tipo"`
	Course        string   `form:"curso" json:"curso"`
	AuthorIDs     []uint   `form:"autores_ids[]" json:"autores_ids"`
	AuthorNames   []string `form:"autores_nomes[]" json:"autores_nomes"`
	Objectives    []string `form:"objetivos[]" json:"objetivos"`
	Methodologies []string `form:"metodologias[]" json:"metodologias"`
	MainLinks     []string `form:"links_principais[]" json:"links_principais"`
	ExtraLinks    []string `form:"links[]" json:"links"`
}

func (r ProjectRequest) toForm() service.ProjectForm {
	return service.ProjectForm{
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		Description:   r.Description,
		Type:          r.Type,
		Course:        r.Course,
		AuthorIDs:     r.AuthorIDs,
		AuthorNames:   r.AuthorNames,
		Objectives:    r.Objectives,
		Methodologies: r.Methodologies,
		MainLinks:     r.MainLinks,
		ExtraLinks:    r.ExtraLinks,
	}
}

// CommentRequest is a new comment.
type CommentRequest struct {
	Content string `form:"conteudo" json:"conteudo"`
}

// SavedProjectResponse is returned after a create or edit.
type SavedProjectResponse struct {
	ID       uint   `json:"id"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// NewForm godoc
// @Summary Blank project form
// @Tags projects
// @Produce json
// @Success 200 {object} service.EditForm
// @Failure 403 {object} errors.ErrorResponse
// @Router /criarprojeto [get]
func (h *ProjectHandler) NewForm(c echo.Context) error {
	form, err := h.projects.EditForm(c.Request().Context(), auth.CurrentUserID(c), nil)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, form)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param titulo formData string true "Title"
// @Param descricao formData string true "Description"
// @Param curso formData string true "Course"
// @Param arquivo formData file false "PDF document"
// @Param imagens[] formData file false "Images"
// @Success 201 {object} SavedProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /criarprojeto [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	return h.save(c, nil)
}

// EditForm godoc
// @Summary Prefilled project form
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} service.EditForm
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /editarprojeto/{id} [get]
func (h *ProjectHandler) EditForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	form, err := h.projects.EditForm(c.Request().Context(), auth.CurrentUserID(c), &id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, form)
}

// Update godoc
// @Summary Edit a project
// @Description Owner or co-author only. Child lists are replaced by the submitted ones and new images are appended.
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} SavedProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /editarprojeto/{id} [post]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.save(c, &id)
}

func (h *ProjectHandler) save(c echo.Context, id *uint) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid form")
	}

	form, err := multipartForm(c)
	if err != nil {
		return badRequest("invalid multipart form")
	}
	var up uploads
	defer up.Close()

	var files service.ProjectFiles
	if files.Document, err = up.formFile(form, "arquivo"); err != nil {
		return fail(c, err)
	}
	if files.Images, err = up.formFiles(form, "imagens[]"); err != nil {
		return fail(c, err)
	}

	project, err := h.projects.Save(c.Request().Context(), auth.CurrentUserID(c), id, req.toForm(), files)
	if err != nil {
		return fail(c, err)
	}

	status, message := http.StatusCreated, "Projeto cadastrado com sucesso!"
	if id != nil {
		status, message = http.StatusOK, "Projeto atualizado com sucesso!"
	}
	return c.JSON(status, SavedProjectResponse{
		ID:       project.ID,
		Message:  message,
		Redirect: fmt.Sprintf("/projeto/%d", project.ID),
	})
}

// Delete godoc
// @Summary Delete a project
// @Description Removes the project with its uploads, comments and likes. Upload removal failures are reported as a warning.
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projeto/{id}/excluir [post]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	warning, err := h.projects.Delete(c.Request().Context(), auth.CurrentUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Projeto excluído com sucesso!", Warning: warning})
}

// Comment godoc
// @Summary Comment on a project
// @Tags projects
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Project ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projeto/{id}/comentario [post]
func (h *ProjectHandler) Comment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	comment, err := h.social.AddComment(c.Request().Context(), auth.CurrentUserID(c), id, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Like godoc
// @Summary Like or unlike a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} service.LikeState
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projeto/{id}/curtir [post]
func (h *ProjectHandler) Like(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	state, err := h.social.ToggleLike(c.Request().Context(), auth.CurrentUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, state)
}
