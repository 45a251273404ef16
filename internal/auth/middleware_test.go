package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokenStore struct {
	revoked map[string]bool
}

func (m *memoryTokenStore) RevokeSession(_ context.Context, tokenID string, _ time.Duration) error {
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryTokenStore) IsSessionRevoked(_ context.Context, tokenID string) (bool, error) {
	return m.revoked[tokenID], nil
}

type memoryAccounts struct {
	existing map[uint]bool
	err      error
}

func (m *memoryAccounts) Exists(_ context.Context, id uint) (bool, error) {
	return m.existing[id], m.err
}

func newTestServer(t *testing.T) (*echo.Echo, *JWTService, *memoryTokenStore) {
	t.Helper()
	jwtService := NewJWTService("test-secret")
	store := &memoryTokenStore{revoked: map[string]bool{}}

	e := echo.New()
	e.Use(SessionMiddleware(jwtService, store, nil))
	e.GET("/anon", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]uint{"user_id": CurrentUserID(c)})
	})
	e.GET("/private", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireLogin())
	e.GET("/suap", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireLogin(), RequireSUAP())
	return e, jwtService, store
}

func serve(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_AnonymousPassesThrough(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := serve(e, "/anon", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":0}`, rec.Body.String())

	rec = serve(e, "/anon", &http.Cookie{Name: CookieName, Value: "garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireLogin(t *testing.T) {
	e, jwtService, store := newTestServer(t)

	rec := serve(e, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tokenID, token, _, err := jwtService.GenerateSessionToken(Session{UserID: 3, Role: "Visitante"})
	require.NoError(t, err)
	cookie := &http.Cookie{Name: CookieName, Value: token}

	rec = serve(e, "/private", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	store.revoked[tokenID] = true
	rec = serve(e, "/private", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSession_DeletedAccountIsAnonymous(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	accounts := &memoryAccounts{existing: map[uint]bool{3: true}}

	e := echo.New()
	e.Use(SessionMiddleware(jwtService, &memoryTokenStore{revoked: map[string]bool{}}, accounts))
	e.GET("/private", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]uint{"user_id": CurrentUserID(c)})
	}, RequireLogin())

	_, token, _, err := jwtService.GenerateSessionToken(Session{UserID: 3, Role: "Visitante"})
	require.NoError(t, err)
	cookie := &http.Cookie{Name: CookieName, Value: token}

	rec := serve(e, "/private", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":3}`, rec.Body.String())

	accounts.err = errors.New("db down")
	rec = serve(e, "/private", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	accounts.err = nil
	delete(accounts.existing, 3)
	rec = serve(e, "/private", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSUAP(t *testing.T) {
	e, jwtService, _ := newTestServer(t)

	_, guest, _, err := jwtService.GenerateSessionToken(Session{UserID: 3, Role: "Visitante"})
	require.NoError(t, err)
	rec := serve(e, "/suap", &http.Cookie{Name: CookieName, Value: guest})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Autentique sua conta com o SUAP por favor", body["error"])
	assert.Equal(t, "/meu_perfil", body["redirect"])

	_, student, _, err := jwtService.GenerateSessionToken(Session{UserID: 4, Role: "Aluno"})
	require.NoError(t, err)
	rec = serve(e, "/suap", &http.Cookie{Name: CookieName, Value: student})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_BearerHeader(t *testing.T) {
	e, jwtService, _ := newTestServer(t)
	_, token, _, err := jwtService.GenerateSessionToken(Session{UserID: 9})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/anon", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.JSONEq(t, `{"user_id":9}`, rec.Body.String())
}

func TestState(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login_suap", nil), rec)
	state := NewState(c, false)
	require.NotEmpty(t, state)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/callback_suap", nil)
	req.AddCookie(cookies[0])
	c = e.NewContext(req, httptest.NewRecorder())
	assert.True(t, CheckState(c, state, false))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/callback_suap", nil), httptest.NewRecorder())
	assert.False(t, CheckState(c, state, false))
}
