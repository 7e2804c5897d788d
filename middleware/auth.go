package middleware

import (
	"strings"
	"time"

	"gym-management-api/apperrors"
	"gym-management-api/logger"
	"gym-management-api/models"
	"gym-management-api/sessions"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

type Claims struct {
	SessionID string          `json:"sid"`
	UserID    uint            `json:"user_id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and checks session tokens. A token is only honoured
// while its session is still live in the manager.
type Authenticator struct {
	secret   []byte
	ttl      time.Duration
	sessions *sessions.Manager
}

func NewAuthenticator(secret string, ttl time.Duration, sm *sessions.Manager) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, sessions: sm}
}

// GenerateToken creates a signed JWT for a session
func (a *Authenticator) GenerateToken(sess *sessions.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sess.ID,
		UserID:    sess.User.ID,
		Email:     sess.User.Email,
		Role:      sess.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// AuthRequired validates the JWT and injects the session into context.
// Browsers cannot set headers on websocket upgrades, so a token query
// parameter is accepted too.
func (a *Authenticator) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			abort(c, apperrors.Unauthorized("Authorization header required (Bearer <token>)"))
			return
		}
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abort(c, apperrors.Unauthorized("Invalid or expired token"))
			return
		}
		sess, ok := a.sessions.Get(claims.SessionID)
		if !ok {
			abort(c, apperrors.Unauthorized("Session has ended, please log in again"))
			return
		}

		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), sess.User.ID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Query("token")
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			abort(c, apperrors.Forbidden("Role not found in context"))
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, apperrors.Forbidden("Access denied. Required role(s): "+rolesString(roles)))
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPCode, gin.H{"error": err})
}

// GetSession extracts the caller session from context
func GetSession(c *gin.Context) *sessions.Session {
	val, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := val.(*sessions.Session)
	return sess
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	if sess := GetSession(c); sess != nil {
		return sess.User.ID
	}
	return 0
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	if sess := GetSession(c); sess != nil {
		return sess.User.Role
	}
	return ""
}
