package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/config"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/pkg/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RequireRoles rejects requests whose identity role is not in the allowed
// set. Deeper scope checks (membership, creator) live in the application
// layer where the resource is available.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Missing token"})
			return
		}
		if !allowed[user.Role(claims.Role)] {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if config.CorsOrigins == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(config.CorsOrigins, ",")
	}

	return cors.New(cfg)
}
