package middleware

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/adapters/http/dto"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/ports"
)

const (
	// ContextKeyClaims is the gin context key of the extracted claims.
	ContextKeyClaims = "claims"

	// AnonymousViewer is the viewer of requests without a subject header.
	AnonymousViewer = "anonymous"

	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
	defaultScopesHeader  = "X-User-Scopes"
)

// Claims are the identity headers set by the gateway after it has verified
// the caller's token.
type Claims struct {
	Subject string
	Roles   []string
	Scopes  []string
}

// HasRole reports whether role was granted.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ExtractClaims reads the claim headers named in cfg.
// Roles are comma separated and scopes space separated, as in OAuth2.
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	subjectHeader, rolesHeader, scopesHeader := defaultSubjectHeader, defaultRolesHeader, defaultScopesHeader

	if cfg != nil {
		subjectHeader = cmp.Or(cfg.SubjectHeader, subjectHeader)
		rolesHeader = cmp.Or(cfg.RolesHeader, rolesHeader)
		scopesHeader = cmp.Or(cfg.ScopesHeader, scopesHeader)
	}

	claims := &Claims{Subject: strings.TrimSpace(c.GetHeader(subjectHeader))}

	for _, r := range strings.Split(c.GetHeader(rolesHeader), ",") {
		if r = strings.TrimSpace(r); r != "" {
			claims.Roles = append(claims.Roles, r)
		}
	}

	claims.Scopes = strings.Fields(c.GetHeader(scopesHeader))

	return claims
}

// GetClaims returns the claims stored by an earlier middleware, or nil.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if cl, ok := v.(*Claims); ok {
			return cl
		}
	}

	return nil
}

func claimsFor(c *gin.Context, cfg *config.AuthConfig) *Claims {
	if claims := GetClaims(c); claims != nil {
		return claims
	}

	claims := ExtractClaims(c, cfg)
	c.Set(ContextKeyClaims, claims)

	return claims
}

// IdentifyViewer stores the claims and puts the viewer into the request
// context for feature flag targeting. Requests without a subject are served
// as AnonymousViewer.
func IdentifyViewer(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFor(c, cfg)

		user := &ports.FeatureFlagUser{ID: claims.Subject}
		if user.ID == "" {
			user.ID = AnonymousViewer
			user.Anonymous = true
		}

		c.Request = c.Request.WithContext(ports.WithFeatureFlagUser(c.Request.Context(), user))
		c.Next()
	}
}

// Viewer returns the subject of the request or AnonymousViewer.
func Viewer(c *gin.Context, cfg *config.AuthConfig) string {
	if subject := claimsFor(c, cfg).Subject; subject != "" {
		return subject
	}

	return AnonymousViewer
}

// RequireAuth rejects requests without a subject with 403.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claimsFor(c, cfg).Subject == "" {
			dto.AbortWithCode(c, dto.ErrorCodeForbidden, "authentication required")
			return
		}

		c.Next()
	}
}

// RequireAny passes when any check accepts the claims.
//
//	admin.POST("/warm", RequireAny(cfg,
//	    func(c *Claims) bool { return c.HasRole("admin") },
//	    func(c *Claims) bool { return c.HasScope("featured:warm") },
//	))
func RequireAny(cfg *config.AuthConfig, checks ...func(*Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFor(c, cfg)

		for _, check := range checks {
			if check(claims) {
				c.Next()
				return
			}
		}

		dto.AbortWithCode(c, dto.ErrorCodeForbidden, "insufficient permissions")
	}
}
