package middleware

import "github.com/gin-gonic/gin"

// Content security policies.
const (
	// APIPolicy forbids every subresource; JSON needs none.
	APIPolicy = "default-src 'none'; frame-ancestors 'none'"

	// DocumentPolicy lets a rendered scene document carry inline styles,
	// which the SVG renderer uses for node and edge colors.
	DocumentPolicy = "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none'"
)

// SecurityHeaders sets response hardening headers. Routes listed in
// documents, keyed by gin route pattern, get DocumentPolicy instead of
// APIPolicy. Scene state changes with every transition, so nothing is cached.
func SecurityHeaders(documents ...string) gin.HandlerFunc {
	docs := make(map[string]bool, len(documents))
	for _, p := range documents {
		docs[p] = true
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")

		if docs[c.FullPath()] {
			h.Set("Content-Security-Policy", DocumentPolicy)
		} else {
			h.Set("Content-Security-Policy", APIPolicy)
		}

		c.Next()
	}
}
