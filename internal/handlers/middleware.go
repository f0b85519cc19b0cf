package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const subjectCtxKey = "subject"

// Error texts returned by bearerMiddleware.
const (
	errNoEditorToken  = "card and state writes require an editor token"
	errBadAuthScheme  = "authorization must be \"Bearer <token>\""
	errEditorRejected = "editor token rejected"
)

// bearerMiddleware guards the write endpoints (card replace, state publish).
// The token subject is stored under subjectCtxKey for the handlers' logs.
func (h *Handler) bearerMiddleware(c *gin.Context) {
	scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
	switch {
	case scheme == "" && !found:
		h.rejectWrite(c, errNoEditorToken, nil)
		return
	case !found || scheme != "Bearer" || token == "":
		h.rejectWrite(c, errBadAuthScheme, nil)
		return
	}

	subject, err := h.services.ParseToken(token)
	if err != nil {
		h.rejectWrite(c, errEditorRejected, err)
		return
	}

	c.Set(subjectCtxKey, subject)
	c.Next()
}

func (h *Handler) rejectWrite(c *gin.Context, msg string, err error) {
	if h.log != nil {
		h.log.Infow("write_rejected", "method", c.Request.Method, "path", c.FullPath(), "reason", msg, "err", err)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
