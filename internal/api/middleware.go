package api

import (
	"campfit/fitness-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey  = "userID"
	ContextIsAdminKey = "isAdmin"
)

// Header carrying the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// jwtClaims defines the structure we expect in the JWT payload.
// Mirroring the structure used in authService.generateJWT.
type jwtClaims struct {
	UserID  string `json:"uid"`
	IsAdmin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// RequestIDMiddleware tags every request with an ID for log correlation,
// honoring one supplied by the client.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// Token is valid; expose identity to downstream handlers. The
		// isAdmin claim is a login-time snapshot only.
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextIsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// AdminMiddleware gates elevated routes. It re-resolves the caller from the
// store so admin rights reflect the account's current state, not the token
// snapshot; an unresolvable subject fails closed. Must run AFTER
// AuthMiddleware.
func AdminMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := getUserObjectID(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
			return
		}

		user, err := authService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		if !user.IsAdmin || user.Suspended {
			abortWithError(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// getUserIDFromContext returns the caller's ID as the hex string stored by
// AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}

// getUserObjectID returns the caller's ID parsed to an ObjectID.
func getUserObjectID(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(idStr)
}

// isAdminFromContext returns the token's admin snapshot.
func isAdminFromContext(c *gin.Context) bool {
	adminRaw, exists := c.Get(ContextIsAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := adminRaw.(bool)
	return ok && isAdmin
}
