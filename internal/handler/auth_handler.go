package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"ifnexus/internal/auth"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/model"
	"ifnexus/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// RegisterRequest represents a local registration.
type RegisterRequest struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// LoginRequest represents a local login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"senha" form:"senha" validate:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Register godoc
// @Summary Register a local account
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email and password
// @Description Sets the session cookie and also returns the token for API clients.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	auth.SetSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookies)
	return c.JSON(http.StatusOK, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(http.TimeFormat),
		User:      user,
	})
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := auth.ClaimsFromContext(c)
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return fail(c, err)
	}
	auth.ClearSessionCookie(c, h.secureCookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout realizado com sucesso"})
}

// LoginSUAP godoc
// @Summary Start the SUAP login
// @Tags auth
// @Success 302
// @Router /login_suap [get]
func (h *AuthHandler) LoginSUAP(c echo.Context) error {
	state := auth.NewState(c, h.secureCookies)
	return c.Redirect(http.StatusFound, h.authService.SUAPAuthURL(state))
}

// CallbackSUAP godoc
// @Summary Finish the SUAP login
// @Description Creates the account on first login and merges a logged in local account into it.
// @Description Failures redirect to /login with the error code in the erro query parameter.
// @Tags auth
// @Param code query string false "Authorization code"
// @Param state query string true "OAuth state"
// @Success 302
// @Router /callback_suap [get]
func (h *AuthHandler) CallbackSUAP(c echo.Context) error {
	if !auth.CheckState(c, c.QueryParam("state"), h.secureCookies) {
		return h.suapFailed(c, apperrors.ErrSUAPState)
	}

	ctx := c.Request().Context()
	previous, _ := auth.ClaimsFromContext(c)
	session, user, err := h.authService.LoginWithSUAP(ctx, c.QueryParam("code"), auth.CurrentUserID(c))
	if err != nil {
		return h.suapFailed(c, err)
	}

	if previous != nil {
		if err := h.authService.Logout(ctx, previous); err != nil {
			log.Warn().Err(err).Uint("user_id", previous.UserID).Msg("failed to revoke previous session")
		}
	}

	auth.SetSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookies)
	log.Info().Uint("user_id", user.ID).Msg("SUAP login")
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) suapFailed(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	log.Warn().Err(err).Str("code", httpErr.Code).Msg("SUAP login failed")
	return c.Redirect(http.StatusFound, "/login?erro="+url.QueryEscape(httpErr.Code))
}
