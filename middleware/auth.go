package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bandmate-app/band-scheduling-backend/config"
	"github.com/bandmate-app/band-scheduling-backend/internal/principal"
)

// AuthMiddleware validates the bearer token issued by the external identity
// provider and resolves it to a principal row. The row is created on first
// resolution; the middleware is the only place that trusts token claims.
func AuthMiddleware(cfg *config.Config, principals principal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header", "kind": "unauthenticated"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header", "kind": "unauthenticated"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "kind": "unauthenticated"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims", "kind": "unauthenticated"})
			return
		}

		resolved := principal.ResolvedClaims{}
		if sub, ok := claims["sub"].(string); ok {
			resolved.Subject = sub
		}
		if email, ok := claims["email"].(string); ok {
			resolved.Email = email
		}
		if phone, ok := claims["phone_number"].(string); ok {
			resolved.Phone = phone
		}
		if name, ok := claims["name"].(string); ok {
			resolved.DisplayName = name
		}

		p, err := principals.ResolveFromClaims(c.Request.Context(), resolved)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not resolve principal", "kind": "unauthenticated"})
			return
		}

		c.Set("principal", *p)
		c.Set("principal_id", p.ID)
		c.Next()
	}
}

// PrincipalFromContext retrieves the resolved principal set by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (principal.Principal, bool) {
	return principal.FromContext(c)
}
