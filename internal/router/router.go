package router

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ifnexus/internal/auth"
	"ifnexus/internal/config"
	"ifnexus/internal/handler"
	"ifnexus/internal/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Project *handler.ProjectHandler
	Listing *handler.ListingHandler
	User    *handler.UserHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	h Handlers,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	accounts auth.AccountLookup,
	m *metrics.Metrics,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.MaxUploadBytes(), 10)))
	e.Use(auth.SessionMiddleware(jwtService, tokenStore, accounts))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.UploadBackend == "" || cfg.UploadBackend == "local" {
		e.Static("/uploads", cfg.UploadDir+"/uploads")
	}

	login := auth.RequireLogin()
	suap := auth.RequireSUAP()

	// Public routes
	e.GET("/", h.Listing.Index)
	e.GET("/projetos", h.Listing.List)
	e.GET("/projeto/:id", h.Listing.Detail)
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.GET("/login_suap", h.Auth.LoginSUAP)
	e.GET("/callback_suap", h.Auth.CallbackSUAP)

	// Session routes
	e.GET("/logout", h.Auth.Logout, login)
	e.POST("/logout", h.Auth.Logout, login)
	e.POST("/projeto/:id/comentario", h.Project.Comment, login)
	e.POST("/projeto/:id/curtir", h.Project.Like, login)
	e.GET("/meus_projetos", h.User.MyProjects, login)
	e.GET("/projetoscurtidos", h.User.LikedProjects, login)
	e.GET("/meu_perfil", h.User.MyProfile, login)
	e.GET("/perfil/:id", h.User.Profile, login)
	e.POST("/alterar_foto", h.User.ChangePhoto, login)

	// SUAP verified routes
	e.GET("/criarprojeto", h.Project.NewForm, suap)
	e.POST("/criarprojeto", h.Project.Create, suap)
	e.GET("/editarprojeto/:id", h.Project.EditForm, suap)
	e.POST("/editarprojeto/:id", h.Project.Update, suap)
	e.POST("/projeto/:id/excluir", h.Project.Delete, suap)
	e.GET("/livesearch/usuarios", h.User.SearchUsers, suap)
}

// requestLogger logs one line per request through zerolog.
func requestLogger() echo.MiddlewareFunc {
	logger := log.With().Str("component", "http").Logger()
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Status >= http.StatusInternalServerError {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
