// Package middleware holds the Gin middleware chain: the authorization
// gate, CORS, panic recovery, request IDs and request logging.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/auth/authctx"
	"github.com/conduit-labs/conduit/auth/jwt"
	apperrors "github.com/conduit-labs/conduit/errors"
)

// Policy selects how the authorization gate treats an absent token.
type Policy int

const (
	// Required rejects requests without a verified identity.
	Required Policy = iota
	// Optional lets anonymous requests through. A token that is present
	// but fails verification is still rejected: a tampered token must
	// never be downgraded to "no identity".
	Optional
)

// Auth returns the authorization gate for the given policy. It extracts
// a bearer token from the Authorization header, verifies it, and attaches
// the claims to the request context for downstream handlers.
func Auth(svc *jwt.Service, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			if policy == Required {
				reject(c, apperrors.Unauthorized(""))
				return
			}
			c.Next() // anonymous
			return
		}

		claims, err := svc.Parse(token)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				reject(c, apperrors.TokenExpired())
			} else {
				reject(c, apperrors.InvalidToken())
			}
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

// tokenFromHeader extracts the credential from an Authorization header of
// the form "<Token|Bearer> <jwt>". The scheme keyword is case-sensitive;
// anything else counts as no token.
func tokenFromHeader(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "Token" && parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func reject(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
