package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ifnexus/internal/auth"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/model"
	"ifnexus/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	args := m.Called(ctx, name, email, password, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.SessionToken, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.SessionToken), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) SUAPAuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) LoginWithSUAP(ctx context.Context, code string, currentUserID uint) (*service.SessionToken, *model.User, error) {
	args := m.Called(ctx, code, currentUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.SessionToken), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newAuthTestServer(svc *MockAuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	h := NewAuthHandler(svc, false)
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/login_suap", h.LoginSUAP)
	e.GET("/callback_suap", h.CallbackSUAP)
	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets session cookie", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		expires := time.Now().Add(time.Hour)
		user := &model.User{ID: 3, Name: "Ana", Email: "ana@if.edu.br"}
		svc.On("Login", mock.Anything, "ana@if.edu.br", "segredo").
			Return(&service.SessionToken{Token: "signed", ExpiresAt: expires}, user, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@if.edu.br","senha":"segredo"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "signed", cookie.Value)
		assert.True(t, cookie.HttpOnly)

		var body AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "signed", body.Token)
		assert.Equal(t, uint(3), body.User.ID)
		svc.AssertExpectations(t)
	})

	t.Run("form encoded body", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		svc.On("Login", mock.Anything, "ana@if.edu.br", "segredo").
			Return(&service.SessionToken{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}, &model.User{ID: 3}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=ana%40if.edu.br&senha=segredo"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		svc.On("Login", mock.Anything, "ana@if.edu.br", "errada").
			Return(nil, nil, apperrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@if.edu.br","senha":"errada"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Code)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("missing password fails validation", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@if.edu.br"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	e := newAuthTestServer(svc)
	svc.On("Register", mock.Anything, "Ana", "ana@if.edu.br", "a", "b").
		Return(nil, apperrors.ErrPasswordMismatch)
	svc.On("Register", mock.Anything, "Ana", "ana@if.edu.br", "a", "a").
		Return(&model.User{ID: 9, Name: "Ana", Email: "ana@if.edu.br", Role: model.RoleGuest}, nil)

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Ana","email":"ana@if.edu.br","password":"a","confirm_password":"b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PASSWORD_MISMATCH", decodeError(t, rec).Code)

	req = httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Ana","email":"ana@if.edu.br","password":"a","confirm_password":"a"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "senha")
	svc.AssertExpectations(t)
}

func TestAuthHandler_SUAPFlow(t *testing.T) {
	t.Run("login redirects with state cookie", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		svc.On("SUAPAuthURL", mock.AnythingOfType("string")).Return("https://suap.example/authorize")

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login_suap", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://suap.example/authorize", rec.Header().Get(echo.HeaderLocation))
		var state *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.StateCookieName {
				state = c
			}
		}
		require.NotNil(t, state)
		svc.AssertCalled(t, "SUAPAuthURL", state.Value)
	})

	t.Run("callback with bad state", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)

		req := httptest.NewRequest(http.MethodGet, "/callback_suap?code=abc&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: auth.StateCookieName, Value: "expected"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?erro=SUAP_INVALID_STATE", rec.Header().Get(echo.HeaderLocation))
		svc.AssertNotCalled(t, "LoginWithSUAP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("callback token failure", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		svc.On("LoginWithSUAP", mock.Anything, "abc", uint(0)).Return(nil, nil, apperrors.ErrSUAPTokenExchange)

		req := httptest.NewRequest(http.MethodGet, "/callback_suap?code=abc&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: auth.StateCookieName, Value: "s1"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?erro=SUAP_TOKEN_FAILED", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("callback success", func(t *testing.T) {
		svc := new(MockAuthService)
		e := newAuthTestServer(svc)
		svc.On("LoginWithSUAP", mock.Anything, "abc", uint(0)).
			Return(&service.SessionToken{Token: "suap-token", ExpiresAt: time.Now().Add(time.Hour)},
				&model.User{ID: 5, Role: model.RoleStudent}, nil)

		req := httptest.NewRequest(http.MethodGet, "/callback_suap?code=abc&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: auth.StateCookieName, Value: "s1"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "suap-token", cookie.Value)
		svc.AssertExpectations(t)
	})
}
