package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonauth "lodging_server/server/common/auth"
)

func newGatedRouter(auth *commonauth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	guest := r.Group("/guest")
	guest.Use(Authorize(auth, "Guest"))
	guest.GET("/data", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	host := r.Group("/host")
	host.Use(Authorize(auth, "Host"))
	host.GET("/data", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthorizeMissingTokenIsUnauthenticated(t *testing.T) {
	auth := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guest/data", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeInvalidTokenIsUnauthenticated(t *testing.T) {
	auth := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(auth)

	for _, credential := range []string{"Bearer not-a-jwt", "not-even-a-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guest/data?token="+url.QueryEscape(credential), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "credential %q", credential)
	}
}

func TestAuthorizeInsufficientRoleIsForbidden(t *testing.T) {
	auth := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(auth)

	guestToken, err := auth.GenerateToken("user-1", "Guest")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/host/data?token="+url.QueryEscape("Bearer "+guestToken), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizePassesMatchingRole(t *testing.T) {
	auth := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(auth)

	hostToken, err := auth.GenerateToken("host-1", "Host")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/host/data?token="+url.QueryEscape("Bearer "+hostToken), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeAcceptsAuthorizationHeaderFallback(t *testing.T) {
	auth := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(auth)

	guestToken, err := auth.GenerateToken("user-1", "Guest")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guest/data", nil)
	req.Header.Set("Authorization", "Bearer "+guestToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeExpiredTokenIsUnauthenticated(t *testing.T) {
	issuer := commonauth.NewService("test-secret", -1)
	verifier := commonauth.NewService("test-secret", 60)
	r := newGatedRouter(verifier)

	expired, err := issuer.GenerateToken("user-1", "Guest")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guest/data?token="+url.QueryEscape("Bearer "+expired), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
