package middleware

import (
	"encoding/json"
	"expvar"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/civic-reports/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }

func TestAnonKey(t *testing.T) {
	keys := helpers.NewAnonKeyManager("secret", "test")
	valid, err := keys.Mint(0)
	require.NoError(t, err)
	foreign, err := helpers.NewAnonKeyManager("other", "test").Mint(0)
	require.NoError(t, err)

	r := gin.New()
	r.Use(AnonKey(keys, true))
	r.GET("/problems", func(c *gin.Context) {
		assert.Equal(t, helpers.RoleAnon, c.GetString(CtxClientRoleKey))
		okHandler(c)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "foreign key", header: "Bearer " + foreign, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/problems", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "Unauthorized", body["error"])
			}
		})
	}
}

func TestAnonKeyDisabled(t *testing.T) {
	r := gin.New()
	r.Use(AnonKey(helpers.NewAnonKeyManager("secret", ""), false))
	r.GET("/problems", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/problems", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnonKeyRequiredWithoutManagerRejects(t *testing.T) {
	r := gin.New()
	r.Use(AnonKey(nil, true))
	r.GET("/problems", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/problems", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(CtxRequestIDKey)
		okHandler(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	incoming := uuid.NewString()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, seen)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", seen)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimit(t *testing.T) {
	mr, rdb := newRedis(t)

	r := gin.New()
	r.Use(RealIP())
	r.POST("/login", RateLimit(rdb, 2, time.Minute, KeyByIPAndPath(), nil), okHandler)

	do := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Forwarded-For", ip)
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.7").Code)
	w := do("203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do("203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, do("198.51.100.1").Code)

	// window expiry resets the counter
	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do("203.0.113.7").Code)
}

func TestRateLimitBypassAndFailOpen(t *testing.T) {
	mr, rdb := newRedis(t)

	r := gin.New()
	r.Use(RealIP())
	r.GET("/debug", RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()), okHandler)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/debug", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.5")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	mr.Close()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), okHandler)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestPrivateOnly(t *testing.T) {
	r := gin.New()
	r.GET("/debug/vars", PrivateOnly(), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	var got string
	r.GET("/", func(c *gin.Context) { got = c.GetString(CtxRealIPKey) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.1", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "[2001:db8::1]:443")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "2001:db8::1", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "garbage")
	req.RemoteAddr = "192.0.2.7:1234"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.7", got)
}

func TestMetricsCountsByStatusAndRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/problems/:id", okHandler)

	before := httpRoutes.Get("GET /problems/:id")
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/problems/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/problems/43", nil))

	got := httpRoutes.Get("GET /problems/:id")
	require.NotNil(t, got)
	want := int64(2)
	if before != nil {
		want += before.(*expvar.Int).Value()
	}
	assert.Equal(t, want, got.(*expvar.Int).Value())
	assert.NotNil(t, httpRequests.Get("2xx"))
}
