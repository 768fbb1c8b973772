package obs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProbeRouter(h HealthHandlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/livez", h.Livez)
	router.GET("/readyz", h.Readyz)
	return router
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReadinessTracksStore(t *testing.T) {
	reachable := true
	router := newProbeRouter(HealthHandlers{StoreReachable: func() bool { return reachable }})

	assert.Equal(t, http.StatusOK, get(router, "/livez", nil).Code)
	assert.Equal(t, http.StatusOK, get(router, "/readyz", nil).Code)

	reachable = false
	rec := get(router, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "reservation store unreachable")

	// Liveness is about the process, not the store.
	assert.Equal(t, http.StatusOK, get(router, "/livez", nil).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware{}.RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(GinRequestIDKey))
	})

	t.Run("caller id is kept", func(t *testing.T) {
		rec := get(router, "/x", map[string]string{"X-Request-ID": "req-42"})
		assert.Equal(t, "req-42", rec.Body.String())
		assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	})

	t.Run("missing id is minted", func(t *testing.T) {
		rec := get(router, "/x", nil)
		require.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))
	})
}
