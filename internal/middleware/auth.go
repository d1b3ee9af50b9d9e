package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"estiloplus-backend/internal/config"
	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/supabase"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// RequireAuth verifies the Supabase access token (HS256, signed with the
// project JWT secret) and loads the caller's role from the users table. The
// role defaults to client when the account row is missing.
func RequireAuth(cfg *config.Config, dbClient *supabase.DatabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação não fornecido"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação não fornecido"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação não fornecido"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token inválido ou expirado"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token inválido ou expirado"})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token inválido ou expirado"})
			c.Abort()
			return
		}

		role := models.RoleClient
		if dbClient != nil {
			if userID, err := uuid.Parse(sub); err == nil {
				if r, err := dbClient.GetUserRole(userID); err == nil {
					role = r
				}
			}
		}

		c.Set(UserIDKey, sub)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(UserRoleKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação não fornecido"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Acesso não autorizado"})
		c.Abort()
	}
}
