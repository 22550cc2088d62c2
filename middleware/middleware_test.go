package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruedo-cms/config"
	"ruedo-cms/helper"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
	"ruedo-cms/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLimiterCacheReusesBuckets(t *testing.T) {
	cache := newLimiterCache[string](1, 2)
	assert.Same(t, cache.get("10.0.0.1"), cache.get("10.0.0.1"))
	assert.NotSame(t, cache.get("10.0.0.1"), cache.get("10.0.0.2"))
}

func TestLimiterCacheKeepsActiveBucketsWhenFull(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newLimiterCache[string](0.001, 1)
	cache.capacity = 3
	cache.now = func() time.Time { return clock }

	throttled := cache.get("10.0.0.1")
	require.True(t, throttled.Allow())
	require.False(t, throttled.Allow())

	clock = clock.Add(time.Minute)
	cache.get("10.0.0.2")
	cache.get("10.0.0.3")

	// the throttled client keeps hammering while idle ones go stale
	clock = clock.Add(staleLimiterAfter + time.Minute)
	assert.Same(t, throttled, cache.get("10.0.0.1"))
	for i := 4; i < 10; i++ {
		clock = clock.Add(time.Second)
		cache.get(fmt.Sprintf("10.0.0.%d", i))
		clock = clock.Add(time.Second)
		assert.Same(t, throttled, cache.get("10.0.0.1"))
	}

	assert.LessOrEqual(t, len(cache.entries), cache.capacity)
	assert.False(t, cache.get("10.0.0.1").Allow())
}

func TestLoginRateLimit(t *testing.T) {
	router := gin.New()
	router.POST("/login", LoginRateLimit(0.001, 2, helper.NewHTTPHelper(nil)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "POST", "/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, "POST", "/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "POST", "/login", "").Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, "GET", "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}

type authFixture struct {
	router *gin.Engine
	tokens services.TokenService
	users  repositories.UserRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	db, err := config.OpenSQLite(uuid.NewString())
	require.NoError(t, err)
	blacklist, err := repositories.NewTokenBlacklistRepository("")
	require.NoError(t, err)
	t.Cleanup(func() { blacklist.Close() })

	cfg := &config.Config{JWTSecret: "test-secret", AccessTokenLifetimeM: 5, RefreshTokenLifetimeD: 1, PageSize: 10}
	users := repositories.NewUserRepository(db)
	tokens := services.NewTokenService(cfg, users, blacklist)
	auth := NewAuthenticator(tokens, users, helper.NewHTTPHelper(nil))

	router := gin.New()
	router.Use(auth.AuthMiddleware())
	router.GET("/public", func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, CurrentUser(c).Email)
	})
	router.GET("/private", auth.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	return authFixture{router: router, tokens: tokens, users: users}
}

func (f authFixture) bearer(t *testing.T, user *models.User) string {
	t.Helper()
	pair, err := f.tokens.IssuePair(user)
	require.NoError(t, err)
	return "Bearer " + pair.Access
}

func TestAuthMiddlewareAnonymous(t *testing.T) {
	f := newAuthFixture(t)

	w := serve(f.router, "GET", "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(f.router, "GET", "/private", "").Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, http.StatusUnauthorized, serve(f.router, "GET", "/public", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(f.router, "GET", "/public", "Bearer abc").Code)

	// a well-signed token for a user that no longer exists
	ghost := &models.User{ID: 999, IsActive: true}
	assert.Equal(t, http.StatusUnauthorized, serve(f.router, "GET", "/public", f.bearer(t, ghost)).Code)

	// refresh tokens are not accepted as access tokens
	user := &models.User{Email: "a@ruedo.co", Password: "x", FirstName: "A", LastName: "B", Role: models.RoleRegular, IsActive: true}
	require.NoError(t, f.users.Create(user))
	pair, err := f.tokens.IssuePair(user)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(f.router, "GET", "/public", "Bearer "+pair.Refresh).Code)
}

func TestAuthMiddlewareLoadsPrincipal(t *testing.T) {
	f := newAuthFixture(t)
	user := &models.User{Email: "a@ruedo.co", Password: "x", FirstName: "A", LastName: "B", Role: models.RoleRegular, IsActive: true}
	require.NoError(t, f.users.Create(user))
	token := f.bearer(t, user)

	w := serve(f.router, "GET", "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@ruedo.co", w.Body.String())
	assert.Equal(t, http.StatusOK, serve(f.router, "GET", "/private", token).Code)

	user.IsActive = false
	require.NoError(t, f.users.Update(user))
	assert.Equal(t, http.StatusForbidden, serve(f.router, "GET", "/public", token).Code)
}
