package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ifnexus/internal/auth"
	"ifnexus/internal/service"
)

// ListingHandler serves the public pages.
type ListingHandler struct {
	listing service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listing service.ListingService) *ListingHandler {
	return &ListingHandler{listing: listing}
}

// Index godoc
// @Summary Home page showcase
// @Description The four most liked projects, padded with default cards.
// @Tags listing
// @Produce json
// @Success 200 {array} service.ShowcaseCard
// @Router / [get]
func (h *ListingHandler) Index(c echo.Context) error {
	cards, err := h.listing.Showcase(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}

// List godoc
// @Summary Project gallery
// @Tags listing
// @Produce json
// @Param curso query string false "Course, todos for any"
// @Param tipo query string false "Type, todos for any"
// @Param ordenacao query string false "curtidas (default) or recentes"
// @Param q query string false "Search in title, description and authors"
// @Param pagina query int false "Page, 12 projects each. Anything but a number means 1"
// @Success 200 {object} service.ListResult
// @Router /projetos [get]
func (h *ListingHandler) List(c echo.Context) error {
	filter := service.ListFilter{
		Course: c.QueryParam("curso"),
		Type:   c.QueryParam("tipo"),
		Sort:   c.QueryParam("ordenacao"),
		Query:  c.QueryParam("q"),
		Page:   queryInt(c, "pagina", 1),
	}
	res, err := h.listing.List(c.Request().Context(), filter, auth.CurrentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Detail godoc
// @Summary Project page
// @Tags listing
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} service.ProjectDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /projeto/{id} [get]
func (h *ListingHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.listing.Detail(c.Request().Context(), id, auth.CurrentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}
