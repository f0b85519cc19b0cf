package handlers

import (
	"errors"
	"net/http"

	"animated_gauge/internal/service"

	"github.com/gin-gonic/gin"
)

// tokenRequest is the payload of POST /auth/token.
type tokenRequest struct {
	ClientSecret string `json:"client_secret" binding:"required"`
}

// TokenRequest is an exported model for Swagger docs of the token payload.
type TokenRequest struct {
	ClientSecret string `json:"client_secret" example:"change-me"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Issue an editor token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenRequest  true  "Client secret"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/token [post]
func (h *Handler) issueToken(c *gin.Context) {
	var input tokenRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.ClientSecret)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"token": token})
	case errors.Is(err, service.ErrAuthDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token issuing is disabled"})
	default:
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	}
}
