package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

// AuthCookieName is the session cookie set at login. Browser clients rely on
// it; API clients send the same token as a Bearer header instead.
const AuthCookieName = "agenda_token"

type AuthMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo repository.UserRepository) *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// extractToken looks for the token in the Authorization header, then the
// session cookie, then the "token" query parameter (used by WebSockets).
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}

func (m *AuthMiddleware) resolveUser(c *gin.Context) (*model.User, error) {
	tokenString := m.extractToken(c)
	if tokenString == "" {
		return nil, fmt.Errorf("no token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject")
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	return user, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolveUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "non connecté"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("current_user", user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present but never
// rejects the request. Handlers that degrade gracefully for anonymous
// visitors use it.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := m.resolveUser(c); err == nil {
			c.Set("user_id", user.ID.String())
			c.Set("current_user", user)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "non connecté"})
			c.Abort()
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "accès réservé aux administrateurs"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get("current_user")
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
