package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// ContextUserID is the gin context key carrying the authenticated user's
// public id.
const ContextUserID = "user_id"

// AuthMiddleware verifies the Authorization bearer token and stores the
// subject public id on the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		userID, err := utils.VerifyToken(cfg.JWTSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// AdminRequired resolves the caller's user record from the store on every
// request and rejects non-admins. The admin flag is deliberately never
// cached between requests.
func AdminRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := ResolveUser(c, cfg)
		if err != nil {
			// a token whose user record vanished is treated the same as a
			// non-admin caller
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// ResolveUser loads the authenticated user's document by the public id the
// auth middleware stored on the context.
func ResolveUser(c *gin.Context, cfg *config.Config) (*models.User, error) {
	uid := c.GetString(ContextUserID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := cfg.Collection("users").
		FindOne(ctx, bson.M{"public_id": uid}).
		Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
