package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/media-api/internal/config"
)

const testIssuer = "https://auth.example.com/realms/site"

func newRouter(v *Validator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", v.Middleware(), func(c *gin.Context) {
		principal, _ := PrincipalFromContext(c)
		c.String(http.StatusOK, principal.Method+":"+principal.Subject)
	})
	return r
}

func doRequest(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestMiddleware_OpenInDevelopmentWithoutAuth(t *testing.T) {
	v := newValidatorWithKeyfunc(&config.Config{Environment: "development"}, nil)
	w := doRequest(newRouter(v), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none:anonymous", w.Body.String())
}

func TestMiddleware_ClosedInProductionWithoutAuth(t *testing.T) {
	v := newValidatorWithKeyfunc(&config.Config{Environment: "production"}, nil)
	w := doRequest(newRouter(v), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_APIKey(t *testing.T) {
	v := newValidatorWithKeyfunc(&config.Config{Environment: "production", AdminAPIKey: "s3cret", AuthAdminRole: "admin"}, nil)
	r := newRouter(v)

	assert.Equal(t, http.StatusOK, doRequest(r, map[string]string{AdminKeyHeader: "s3cret"}).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, map[string]string{"Authorization": "Bearer s3cret"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, map[string]string{AdminKeyHeader: "wrong"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, nil).Code)
}

func TestMiddleware_JWT(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:   "production",
		AuthEnabled:   true,
		AuthIssuer:    testIssuer,
		AuthAudience:  "media-api",
		AuthAdminRole: "admin",
	}
	v := newValidatorWithKeyfunc(cfg, func(*jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	r := newRouter(v)

	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss": testIssuer,
			"aud": "media-api",
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	admin := base()
	admin["realm_access"] = map[string]interface{}{"roles": []interface{}{"offline_access", "admin"}}
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, key, admin)})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jwt:user-1", w.Body.String())

	viewer := base()
	viewer["roles"] = []interface{}{"viewer"}
	w = doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, key, viewer)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	wrongIssuer := base()
	wrongIssuer["iss"] = "https://evil.example.com"
	wrongIssuer["roles"] = []interface{}{"admin"}
	w = doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, key, wrongIssuer)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged := base()
	forged["roles"] = []interface{}{"admin"}
	w = doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, other, forged)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := base()
	expired["roles"] = []interface{}{"admin"}
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	w = doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, key, expired)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, nil).Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}
