package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillmarket/internal/api/middleware"
	"skillmarket/internal/auth"
	"skillmarket/internal/config"
	"skillmarket/internal/storage/storetest"
	"skillmarket/pkg/models"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func seedUser(users *storetest.Users, id, userType string) *models.User {
	user := &models.User{ID: id, Name: "Test", Email: id + "@example.com", UserType: userType}
	users.Seed(user)
	return user
}

func echoHandler(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, map[string]string{"user_id": user.ID})
}

func TestProtectValidToken(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()
	user := seedUser(users, "worker-1", models.UserTypeWorker)

	token, err := auth.GenerateToken(testSecret, time.Hour, user)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "worker-1")
}

func TestProtectRejectsMissingHeader(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsBadToken(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()
	user := seedUser(users, "worker-1", models.UserTypeWorker)

	token, err := auth.GenerateToken("another-secret", time.Hour, user)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()
	user := seedUser(users, "worker-1", models.UserTypeWorker)

	token, err := auth.GenerateToken(testSecret, -time.Minute, user)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsDeletedAccount(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()
	user := &models.User{ID: "ghost", UserType: models.UserTypeWorker}

	token, err := auth.GenerateToken(testSecret, time.Hour, user)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.Protect(cfg, users)(echoHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserType(t *testing.T) {
	cfg := testConfig()
	users := storetest.NewUsers()
	worker := seedUser(users, "worker-1", models.UserTypeWorker)

	token, err := auth.GenerateToken(testSecret, time.Hour, worker)
	require.NoError(t, err)

	e := echo.New()

	run := func(userType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := middleware.Protect(cfg, users)(middleware.RequireUserType(userType)(echoHandler))
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(models.UserTypeWorker).Code)
	assert.Equal(t, http.StatusForbidden, run(models.UserTypeProvider).Code)
}
