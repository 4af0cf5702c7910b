package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// AdminKeyHeader carries the static admin API key.
const AdminKeyHeader = "X-Media-Admin-Key"

// PrincipalKey is the gin context key of the authenticated Principal.
const PrincipalKey = "auth_principal"

// Principal identifies the caller of an admin route.
type Principal struct {
	Subject string
	Method  string
	Roles   []string
}

type keyFunc func(token *jwt.Token) (interface{}, error)

// Validator authenticates admin requests by JWT (JWKS) or static API key.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	keyfunc keyFunc
}

// NewValidator initializes JWKS fetching when JWT auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	logger := log.With().Str("component", "auth").Logger()
	v := &Validator{cfg: cfg, log: logger}

	if !cfg.AdminAuthConfigured() {
		logger.Warn().Str("environment", cfg.Environment).Msg("no admin authentication configured; admin routes are open only in development")
	}
	if !cfg.AuthEnabled {
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error().Err(err).Msg("jwks refresh error")
		},
	}
	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.keyfunc = jwks.Keyfunc
	return v, nil
}

// newValidatorWithKeyfunc builds a validator around a fixed key source, used by tests.
func newValidatorWithKeyfunc(cfg *config.Config, kf keyFunc) *Validator {
	return &Validator{cfg: cfg, log: zerolog.Nop(), keyfunc: kf}
}

// Middleware enforces admin authentication. An API key match or a valid JWT
// carrying the admin role is required.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.cfg.AdminAuthConfigured() {
			if isDevelopment(v.cfg.Environment) {
				c.Set(PrincipalKey, Principal{Subject: "anonymous", Method: "none"})
				c.Next()
				return
			}
			platformerrors.WriteUnauthorized(c, "admin authentication is not configured")
			return
		}

		if principal, ok := v.apiKeyPrincipal(c); ok {
			c.Set(PrincipalKey, principal)
			c.Next()
			return
		}

		if !v.cfg.AuthEnabled {
			platformerrors.WriteUnauthorized(c, "missing or invalid admin key")
			return
		}

		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			platformerrors.WriteUnauthorized(c, "missing bearer token")
			return
		}

		principal, err := v.parseToken(tokenString)
		if err != nil {
			v.log.Debug().Err(err).Msg("rejected admin token")
			platformerrors.WriteUnauthorized(c, "invalid token")
			return
		}
		if !hasRole(principal.Roles, v.cfg.AuthAdminRole) {
			platformerrors.WriteForbidden(c, "admin access required")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

func (v *Validator) apiKeyPrincipal(c *gin.Context) (Principal, bool) {
	if v.cfg.AdminAPIKey == "" {
		return Principal{}, false
	}
	presented := strings.TrimSpace(c.GetHeader(AdminKeyHeader))
	if presented == "" {
		presented = bearerToken(c.GetHeader("Authorization"))
	}
	if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(v.cfg.AdminAPIKey)) != 1 {
		return Principal{}, false
	}
	return Principal{Subject: "admin-api-key", Method: "api_key", Roles: []string{v.cfg.AuthAdminRole}}, true
}

func (v *Validator) parseToken(tokenString string) (Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	}
	if v.cfg.AuthAudience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.AuthAudience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, jwt.Keyfunc(v.keyfunc), opts...)
	if err != nil {
		return Principal{}, err
	}
	if !token.Valid {
		return Principal{}, jwt.ErrTokenInvalidClaims
	}

	subject, _ := claims.GetSubject()
	return Principal{Subject: subject, Method: "jwt", Roles: rolesFromClaims(claims)}, nil
}

// PrincipalFromContext returns the principal set by Middleware.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	val, ok := c.Get(PrincipalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}

// rolesFromClaims reads "roles" and Keycloak's "realm_access.roles".
func rolesFromClaims(claims jwt.MapClaims) []string {
	var roles []string
	roles = append(roles, stringList(claims["roles"])...)
	if realm, ok := claims["realm_access"].(map[string]interface{}); ok {
		roles = append(roles, stringList(realm["roles"])...)
	}
	return roles
}

func stringList(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if strings.EqualFold(role, want) {
			return true
		}
	}
	return false
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "", "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
