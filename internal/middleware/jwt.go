package middleware

import (
	"net/http"
	"strings"

	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextDriverID is the gin context key holding the authenticated driver's ID.
const ContextDriverID = "driver_id"

// ContextEmail is the gin context key holding the session email.
const ContextEmail = "email"

// TokenIssuer signs and validates the portal's bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// GenerateToken issues an HS256 token carrying the driver's identity.
func (t *TokenIssuer) GenerateToken(driverID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"driver_id": driverID,
		"email":     email,
		"exp":       time.Now().Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// RequireAuth ensures a valid JWT is present and stores its claims in the
// gin context for downstream handlers.
func (t *TokenIssuer) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		c.Set(ContextDriverID, claims["driver_id"])
		c.Set(ContextEmail, claims["email"])

		c.Next()
	}
}

// DriverIDFromContext pulls the authenticated driver ID stored by RequireAuth.
// Returns 0 when the request carried no session.
func DriverIDFromContext(c *gin.Context) uint {
	v, exists := c.Get(ContextDriverID)
	if !exists {
		return 0
	}
	// JWT numeric claims decode as float64
	if f, ok := v.(float64); ok {
		return uint(f)
	}
	return 0
}

// EmailFromContext pulls the session email stored by RequireAuth.
func EmailFromContext(c *gin.Context) string {
	v, exists := c.Get(ContextEmail)
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
