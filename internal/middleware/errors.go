package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/httputil"
	"github.com/naijapath/routeviz/internal/metrics"
)

// respondError counts the error and delegates to the shared httputil.RespondError helper.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
