package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userrepo "albumizer/internal/repository/user"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginHandler verifies credentials and issues a bearer token.
func loginHandler(users userrepo.Repository, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		u, err := users.GetByUsername(c.Request.Context(), req.Username)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		claims := jwt.MapClaims{
			"uid":      u.ID,
			"username": u.Username,
			"exp":      time.Now().Add(ttl).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "username": u.Username})
	}
}

// requireUser validates the bearer token and injects the user identity into
// the request context.
func requireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := parseBearer(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, username)
		c.Next()
	}
}

// optionalUser injects the user identity when a valid token is present and
// continues anonymously otherwise.
func optionalUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, username, ok := parseBearer(c, secret); ok {
			c.Set(ctxUserID, userID)
			c.Set(ctxUsername, username)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (int64, string, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return 0, "", false
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return 0, "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, "", false
	}
	username, _ := claims["username"].(string)
	return int64(uid), username, true
}

// currentUser returns the authenticated user id, or 0 for anonymous requests.
func currentUser(c *gin.Context) int64 {
	if v, ok := c.Get(ctxUserID); ok {
		return v.(int64)
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	if v, ok := c.Get(ctxUsername); ok {
		return v.(string)
	}
	return ""
}
