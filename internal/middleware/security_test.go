package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeaders("/scene.svg"))
	r.GET("/scene", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/scene.svg", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		path string
		csp  string
	}{
		{"/scene", middleware.APIPolicy},
		{"/scene.svg", middleware.DocumentPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			want := map[string]string{
				"X-Content-Type-Options":  "nosniff",
				"X-Frame-Options":         "DENY",
				"Referrer-Policy":         "no-referrer",
				"Cache-Control":           "no-store",
				"Content-Security-Policy": tt.csp,
			}
			for header, v := range want {
				if got := w.Header().Get(header); got != v {
					t.Errorf("%s = %q, want %q", header, got, v)
				}
			}
		})
	}
}
