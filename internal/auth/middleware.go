package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/model"
)

const (
	// CookieName is the session cookie set on login.
	CookieName = "session"
	// StateCookieName carries the SUAP OAuth state between redirect and callback.
	StateCookieName = "suap_state"

	claimsContextKey = "session_claims"
	stateCookieTTL   = 10 * time.Minute
)

var (
	errSessionRevoked = errors.New("session revoked")
	errAccountGone    = errors.New("session account no longer exists")
)

// AccountLookup reports whether the user a session belongs to still exists.
type AccountLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// SessionMiddleware reads the session token from the Authorization header or the
// session cookie and stores its claims in the context. Requests without a
// valid session pass through anonymously; RequireLogin enforces one.
// Sessions of deleted accounts, such as one merged into a SUAP account, are
// ignored when accounts is set.
func SessionMiddleware(jwtService *JWTService, store TokenStoreInterface, accounts AccountLookup) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + CookieName,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(raw)
			if err != nil {
				return nil, err
			}
			ctx := c.Request().Context()
			revoked, _ := store.IsSessionRevoked(ctx, claims.ID)
			if revoked {
				return nil, errSessionRevoked
			}
			if accounts != nil {
				// lookup errors keep the session, like revocation errors do
				if exists, err := accounts.Exists(ctx, claims.UserID); err == nil && !exists {
					return nil, errAccountGone
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// ClaimsFromContext returns the current session claims, if any.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// CurrentUserID returns the logged in user id, or zero for anonymous requests.
func CurrentUserID(c echo.Context) uint {
	if claims, ok := ClaimsFromContext(c); ok {
		return claims.UserID
	}
	return 0
}

// RequireLogin rejects requests without a valid session.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ClaimsFromContext(c); !ok {
				return Reject(apperrors.ErrLoginRequired)
			}
			return next(c)
		}
	}
}

// RequireSUAP rejects requests whose user is not SUAP verified.
func RequireSUAP() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok || !model.IsVerified(claims.Role) {
				return Reject(apperrors.ErrSUAPRequired)
			}
			return next(c)
		}
	}
}

// Reject converts a domain error into the JSON error response echo renders.
func Reject(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// SetSessionCookie stores the session token in an HttpOnly cookie.
func SetSessionCookie(c echo.Context, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewState returns a fresh OAuth state and remembers it in a short lived cookie.
func NewState(c echo.Context, secure bool) string {
	state := generateTokenID()
	c.SetCookie(&http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}

// CheckState compares the callback state against the cookie and clears it.
func CheckState(c echo.Context, state string, secure bool) bool {
	cookie, err := c.Cookie(StateCookieName)
	c.SetCookie(&http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == state
}
