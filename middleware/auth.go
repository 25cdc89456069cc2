package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lmhoang/survey-api/utils"
)

const CtxClaims = "claims"

// AuthJWT checks Authorization: Bearer <token> and injects the verified
// claims into the context. All mutating survey routes sit behind it.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxClaims, claims)
		c.Next()
	}
}
