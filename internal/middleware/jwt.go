package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/volcano/internal/pkg/jwt"
	"github.com/xxxsen/volcano/internal/pkg/response"
)

const ContextIdentityKey = "identity"

// JWTAuth resolves the bearer token if one is present. Anonymous requests
// pass through; whether a route needs a caller is up to its handler.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := jwt.Authenticate(c.GetHeader("Authorization"), secret, time.Now())
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Debug("reject bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, http.StatusUnauthorized, rejectionMessage(err))
			return
		}
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the anonymous identity when JWTAuth did not run.
func IdentityFrom(c *gin.Context) jwt.Identity {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return jwt.Identity{}
	}
	identity, _ := value.(jwt.Identity)
	return identity
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrMalformedHeader):
		return "Authorization header is malformed"
	case errors.Is(err, jwt.ErrExpiredToken):
		return "JWT token has expired"
	default:
		return "Invalid JWT token"
	}
}
