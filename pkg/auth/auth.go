package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const ginKey = "identity"

// Identity is the verified caller extracted from the platform's HS256 token.
// A nil Identity means the request is unauthenticated; services decide
// whether that is an error.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Middleware parses an optional Bearer token and attaches the Identity to the
// gin context. Invalid or absent tokens leave the request anonymous; the
// service layer rejects anonymous callers where authentication is required.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok && secret != "" {
			if id := parseToken(raw, secret); id != nil {
				c.Set(ginKey, id)
			}
		}
		c.Next()
	}
}

func parseToken(raw, secret string) *Identity {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id := &Identity{
		UID:   claimString(claims, "sub"),
		Email: claimString(claims, "email"),
		Name:  claimString(claims, "name"),
	}
	if id.UID == "" {
		return nil
	}
	return id
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// FromGin returns the verified caller identity, or nil when anonymous.
func FromGin(c *gin.Context) *Identity {
	if v, ok := c.Get(ginKey); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}
