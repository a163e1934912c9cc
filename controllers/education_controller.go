package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// ---------------- LIST ----------------
func ListEducationContent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("education_content")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page := utils.ParsePagination(c, 10)

		filter := bson.M{"is_published": true}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			cfg.Logger.Error("education: count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch content"})
			return
		}

		cursor, err := col.Find(ctx, filter, options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(page.Skip()).
			SetLimit(page.PerPage))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch content"})
			return
		}

		content := []models.EducationContent{}
		if err := cursor.All(ctx, &content); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode content"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"content":      content,
			"total":        total,
			"pages":        page.Pages(total),
			"current_page": page.Page,
		})
	}
}

// ---------------- GET ----------------
func GetEducationContent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var content models.EducationContent
		err := cfg.Collection("education_content").
			FindOne(ctx, bson.M{"public_id": c.Param("id"), "is_published": true}).
			Decode(&content)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}

		etag := utils.GenerateETag(content.ID, content.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, gin.H{"content": content})
	}
}

// ---------------- CREATE (admin) ----------------
func CreateEducationContent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string `form:"title" json:"title"`
			Content     string `form:"content" json:"content"`
			Category    string `form:"category" json:"category"`
			Author      string `form:"author" json:"author"`
			IsPublished *bool  `form:"is_published" json:"is_published"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.MissingFields(
			utils.Field{Name: "title", Value: input.Title},
			utils.Field{Name: "content", Value: input.Content},
			utils.Field{Name: "category", Value: input.Category},
		); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var imageURL string
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if files := form.File["image"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				url, err := utils.UploadToCloudinary(cfg, file, "education")
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
					return
				}
				imageURL = url
			}
		}

		published := true
		if input.IsPublished != nil {
			published = *input.IsPublished
		}

		now := time.Now().UTC()
		content := models.EducationContent{
			ID:          primitive.NewObjectID(),
			PublicID:    uuid.NewString(),
			Title:       input.Title,
			Content:     input.Content,
			Category:    input.Category,
			ImageURL:    imageURL,
			Author:      input.Author,
			IsPublished: published,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Collection("education_content").InsertOne(ctx, content); err != nil {
			cfg.Logger.Error("education: insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create content"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Content created successfully",
			"content": content,
		})
	}
}
