package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/driver-portal/internal/middleware"
)

func newRouter(tokens *middleware.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", tokens.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"driver_id": middleware.DriverIDFromContext(c),
			"email":     middleware.EmailFromContext(c),
		})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := middleware.NewTokenIssuer("test-secret", time.Hour)
	token, err := tokens.GenerateToken(7, "driver@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newRouter(tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"driver_id":7`)
	assert.Contains(t, rec.Body.String(), "driver@example.com")
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := middleware.NewTokenIssuer("test-secret", time.Hour)

	expired, err := middleware.NewTokenIssuer("test-secret", -time.Hour).GenerateToken(7, "driver@example.com")
	require.NoError(t, err)
	wrongKey, err := middleware.NewTokenIssuer("other-secret", time.Hour).GenerateToken(7, "driver@example.com")
	require.NoError(t, err)

	// Unsigned token; only HS256 is accepted.
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"driver_id": 7,
		"email":     "driver@example.com",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "MissingHeader", header: ""},
		{name: "NotBearer", header: "Token abc"},
		{name: "Garbage", header: "Bearer not-a-token"},
		{name: "Expired", header: "Bearer " + expired},
		{name: "WrongKey", header: "Bearer " + wrongKey},
		{name: "NoneAlgorithm", header: "Bearer " + noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newRouter(tokens).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
