package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-backend/internal/config"
	"github.com/iliyamo/portfolio-backend/internal/logging"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func guarded(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/admin", JWTAuth(secret), RequireRole(roles...))
	g.GET("/contacts", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	})
	return e
}

func do(e *echo.Echo, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_MissingBearer(t *testing.T) {
	rec := do(guarded("ADMIN"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestJWTAuth_ValidAdminToken(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": "owner", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := do(guarded("ADMIN"), "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner", rec.Body.String())
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "owner", "role": "ADMIN"})
	rec := do(guarded("ADMIN"), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_Expired(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub": "owner", "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	rec := do(guarded("ADMIN"), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsNoneAlgorithm(t *testing.T) {
	tok := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "owner", "role": "ADMIN"})
	rec := do(guarded("ADMIN"), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "visitor", "role": "GUEST"})
	rec := do(guarded("ADMIN"), "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func rateCtx(method, path, ip string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestBuildRateKey(t *testing.T) {
	c := rateCtx(http.MethodPost, "/api/contact", "203.0.113.7")

	cases := map[string]string{
		"":              "rl:ip:203.0.113.7:route:POST /api/contact",
		"ip":            "rl:ip:203.0.113.7",
		"user":          "rl:user:anon",
		"route":         "rl:route:POST /api/contact",
		"ip_user":       "rl:ip:203.0.113.7:user:anon",
		"ip_user_route": "rl:ip:203.0.113.7:user:anon:route:POST /api/contact",
	}
	for strategy, want := range cases {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}
		assert.Equal(t, want, buildRateKey(cfg, c), "strategy %q", strategy)
	}
}

func TestCurrentUserID_FromClaims(t *testing.T) {
	c := rateCtx(http.MethodGet, "/x", "1.1.1.1")
	assert.Equal(t, "anon", currentUserID(c))
	c.Set("user_id", "owner")
	assert.Equal(t, "owner", currentUserID(c))
}

func TestAsInt64AndRetryAfter(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64("4"))
	assert.Equal(t, int64(0), asInt64(struct{}{}))
	assert.Equal(t, 2, retryAfterSeconds(1001))
	assert.Equal(t, 0, retryAfterSeconds(-5))
}

func TestNewTokenBucket_PassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, logging.Discard())
	e.POST("/contact", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(slogTo(&buf)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, p := range []string{"/ok", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "status=200")
	assert.Contains(t, lines[1], "level=WARN")
	assert.Contains(t, lines[1], "status=404")
}

func slogTo(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}
