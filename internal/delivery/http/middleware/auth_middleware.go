package middleware

import (
	"net/http"

	"go-devnetwork-backend/internal/delivery/http/response"
	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthGuard gates every private route. It reads the x-auth-token header,
// verifies it, and binds the decoded identity to the request context.
// A failed verification is final for the request; no downstream handler runs.
func AuthGuard(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("x-auth-token")
		if tokenString == "" {
			response.Msg(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			response.Msg(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Next()
	}
}
