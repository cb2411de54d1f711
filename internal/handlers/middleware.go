package handlers

import (
	"net/http"
	"strings"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// identityMiddleware rejects requests without a valid bearer token and
// attaches the decoded claims to the Gin context for handlers downstream.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(identityKey, claims)
	c.Next()
}

// callerIdentity returns the claims attached by identityMiddleware.
func callerIdentity(c *gin.Context) (*service.TokenClaims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.TokenClaims)
	return claims, ok
}
