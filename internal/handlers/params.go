package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/SscSPs/ledger_books_app/internal/utils/ids"
	"github.com/gin-gonic/gin"
)

// canonicalIDParams rewrites every *_id path parameter to its canonical UUID form.
// A parameter that is not a UUID names no resource and is answered with 404.
func canonicalIDParams(c *gin.Context) {
	for i, p := range c.Params {
		if !strings.HasSuffix(p.Key, "_id") {
			continue
		}
		id, ok := ids.Canonical(p.Value)
		if !ok {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Malformed path identifier",
				slog.String("param", p.Key),
				slog.String("value", p.Value))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": p.Key + " not found"})
			return
		}
		c.Params[i].Value = id
	}
	c.Next()
}
