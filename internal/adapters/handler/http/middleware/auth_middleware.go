package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextDeviceIDKey  = "deviceID"
)

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware admits requests carrying a bearer token issued to a device
// and stores the device id in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader(authorizationHeader))
		if !ok {
			msg := "invalid authorization header format"
			if c.GetHeader(authorizationHeader) == "" {
				msg = "authorization header required"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		deviceID, err := tokens.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextDeviceIDKey, deviceID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], authorizationType) {
		return "", false
	}
	return fields[1], true
}

func GetDeviceID(c *gin.Context) (string, bool) {
	id, ok := c.Get(ContextDeviceIDKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
