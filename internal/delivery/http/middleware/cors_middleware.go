package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"riverpatch-inquiry-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// OriginPolicy is the fixed allow-list of browser origins.
// Credentials are never allowed cross-origin: the API is stateless.
type OriginPolicy struct {
	origins []string
	allowed map[string]struct{}
}

// NewOriginPolicy builds a policy from exact origins ("https://www.riverpatch.com")
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, dup := p.allowed[o]; !dup {
			p.origins = append(p.origins, o)
		}
		p.allowed[o] = struct{}{}
	}
	return p
}

// Allowed reports whether origin is on the allow-list. An empty origin is never "allowed";
// callers decide separately how to treat non-browser requests.
func (p *OriginPolicy) Allowed(origin string) bool {
	_, ok := p.allowed[origin]
	return ok
}

// Origins returns the allow-list in configuration order
func (p *OriginPolicy) Origins() []string {
	return append([]string(nil), p.origins...)
}

// CORSMiddleware enforces the origin allow-list.
//
//   - No Origin header (curl, server-to-server, same-origin): allowed, no CORS headers.
//   - Origin on the list: CORS headers echo that origin.
//   - Any other origin: the request is rejected with 403 before reaching a handler.
//
// OPTIONS requests pass through untouched; the Preflight handlers answer them.
func CORSMiddleware(policy *OriginPolicy, secLog *security.SecurityLogger, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Vary header to ensure caches differentiate by Origin
		c.Header("Vary", "Origin")

		if origin == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if !policy.Allowed(origin) {
			log.WarnContext(c.Request.Context(), "Blocked by CORS",
				"origin", origin, "method", c.Request.Method, "path", c.Request.URL.Path)
			secLog.LogOriginRejected(c.Request.Context(), origin, c.Request.Method, c.Request.URL.Path,
				c.ClientIP(), c.Request.UserAgent(), GetRequestID(c))
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)

		c.Next()
	}
}

// Preflight answers a browser OPTIONS request for one route. Allowed origins get
// access-control headers naming the origin; others get a bare 204 and the browser blocks them.
func Preflight(policy *OriginPolicy, methods, headers string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if policy.Allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
