package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	middleware "github.com/curerise/curerise-backend-go/middleware"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// ---------------- REGISTER ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Phone    string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.MissingFields(
			utils.Field{Name: "email", Value: input.Email},
			utils.Field{Name: "password", Value: input.Password},
			utils.Field{Name: "name", Value: input.Name},
		); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !utils.ValidEmail(input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// duplicate email check
		err := col.FindOne(ctx, bson.M{"email": input.Email}).Err()
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			cfg.Logger.Error("register: email lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			cfg.Logger.Error("register: password hash failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		user := models.User{
			ID:           primitive.NewObjectID(),
			PublicID:     uuid.NewString(),
			Email:        input.Email,
			PasswordHash: hash,
			Name:         input.Name,
			Phone:        input.Phone,
			IsAdmin:      false,
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			cfg.Logger.Error("register: insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		token, err := utils.IssueToken(cfg.JWTSecret, user.PublicID, cfg.TokenTTL)
		if err != nil {
			cfg.Logger.Error("register: token issue failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":      "User registered successfully",
			"access_token": token,
			"user":         user,
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
		if err != nil || !utils.CheckPassword(user.PasswordHash, input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		now := time.Now().UTC()
		if _, err := col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"last_login": now}}); err != nil {
			cfg.Logger.Warn("login: could not update last_login", zap.Error(err))
		}
		user.LastLogin = &now

		token, err := utils.IssueToken(cfg.JWTSecret, user.PublicID, cfg.TokenTTL)
		if err != nil {
			cfg.Logger.Error("login: token issue failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"access_token": token,
			"user":         user,
		})
	}
}

// ---------------- PROFILE ----------------
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.ResolveUser(c, cfg)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.ResolveUser(c, cfg)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input struct {
			Email *string `json:"email"`
			Name  *string `json:"name"`
			Phone *string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		update := bson.M{}
		if input.Email != nil {
			if !utils.ValidEmail(*input.Email) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
				return
			}
			// uniqueness against every other user
			err := col.FindOne(ctx, bson.M{
				"email": *input.Email,
				"_id":   bson.M{"$ne": user.ID},
			}).Err()
			if err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
				return
			}
			if !errors.Is(err, mongo.ErrNoDocuments) {
				cfg.Logger.Error("profile: email lookup failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
				return
			}
			update["email"] = *input.Email
			user.Email = *input.Email
		}
		if input.Name != nil {
			update["name"] = *input.Name
			user.Name = *input.Name
		}
		if input.Phone != nil {
			update["phone"] = *input.Phone
			user.Phone = *input.Phone
		}

		if len(update) > 0 {
			if _, err := col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
				cfg.Logger.Error("profile: update failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}
