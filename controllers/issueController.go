package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"wardwatch-be/ai"
	"wardwatch-be/models"
	"wardwatch-be/services"
	"wardwatch-be/storage"

	"github.com/gin-gonic/gin"
)

// IssueHandler carries the handler dependencies. Everything is injected at
// construction; there is no package-level state.
type IssueHandler struct {
	Lifecycle *services.Lifecycle
	Proximity *services.ProximityIndex
	Issues    storage.IssueStore

	// Optional AI collaborators. nil means unavailable; handlers degrade
	// rather than fail.
	Verifier   ai.ImageVerifier
	Describer  ai.ImageDescriber
	Translator ai.Translator
}

func NewIssueHandler(lifecycle *services.Lifecycle, proximity *services.ProximityIndex, issues storage.IssueStore) *IssueHandler {
	return &IssueHandler{
		Lifecycle: lifecycle,
		Proximity: proximity,
		Issues:    issues,
	}
}

// ReportIssue handles a new citizen report: verification, translation,
// creation with duplicate counting, ward assignment and officer notification.
func (h *IssueHandler) ReportIssue(c *gin.Context) {
	var input struct {
		Latitude    *float64 `json:"latitude" binding:"required"`
		Longitude   *float64 `json:"longitude" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Description string   `json:"description"`
		Image       string   `json:"image"`
		UserID      string   `json:"user_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	category := input.Category
	description := input.Description

	// Verification is advisory unless it positively reports a mismatch for a
	// supplied image.
	if h.Verifier != nil && input.Image != "" {
		result, err := h.Verifier.VerifyImage(c.Request.Context(), input.Image, description, category)
		if err != nil {
			log.Printf("image verification unavailable, accepting report as submitted: %v", err)
		} else {
			if !result.Match {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Image does not match the description.",
				})
				return
			}
			category = result.Category
			description = result.Description
		}
	}

	categoryKannada := h.translate(c.Request.Context(), category)
	descriptionKannada := ""
	if description != "" {
		descriptionKannada = h.translate(c.Request.Context(), description)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	issue, err := h.Lifecycle.Create(ctx, services.ReportInput{
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Category:           category,
		CategoryKannada:    categoryKannada,
		Description:        description,
		DescriptionKannada: descriptionKannada,
		Image:              input.Image,
		UserID:             input.UserID,
	})
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Missing required fields",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error reporting issue",
		})
		return
	}

	result, err := h.Lifecycle.AssignWard(ctx, issue.ID)
	if err != nil {
		log.Printf("ward assignment failed for issue %s: %v", issue.ID, err)
	}

	message := "Issue reported successfully, no matching ward found"
	if result.Notified {
		message = "Issue reported successfully, ward notified"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"issue_id":      issue.ID,
		"ward_notified": result.Notified,
		"message":       message,
	})
}

// CheckDuplicate reports whether same-category issues already exist within
// the duplicate-check radius of a coordinate.
func (h *IssueHandler) CheckDuplicate(c *gin.Context) {
	var input struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
		Category  string   `json:"category" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nearby, err := h.Proximity.FindNearby(ctx, *input.Latitude, *input.Longitude, services.DuplicateCheckRadiusMeters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error checking duplicates",
		})
		return
	}

	similar := services.FilterSameCategory(nearby, models.IssueCategory(input.Category))

	c.JSON(http.StatusOK, gin.H{
		"duplicate_found": len(similar) > 0,
		"similar_issues":  similar,
	})
}

// IssuesNearby returns every issue within the requested radius of a point.
func (h *IssueHandler) IssuesNearby(c *gin.Context) {
	latitude, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	radius := float64(services.NearbyQueryRadiusMeters)
	if r, err := strconv.ParseFloat(c.DefaultQuery("radius", "500"), 64); err == nil {
		radius = r
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nearby, err := h.Proximity.FindNearby(ctx, latitude, longitude, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error retrieving nearby issues",
		})
		return
	}
	if nearby == nil {
		nearby = []models.NearbyIssue{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issues":  nearby,
	})
}

// GetIssue retrieves an issue by id, including its ward-assignment and
// notification outcome.
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID := c.Param("issue_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := h.Issues.Get(ctx, issueID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Issue not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error retrieving issue",
			})
		}
		return
	}

	wardName := issue.WardName
	if wardName == "" {
		wardName = "Not assigned"
	}

	location := gin.H{"lat": nil, "lon": nil}
	if issue.HasLocation() {
		location = gin.H{"lat": *issue.Latitude, "lon": *issue.Longitude}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issue": gin.H{
			"id":                issue.ID,
			"location":          location,
			"category":          issue.Category,
			"description":       issue.Description,
			"status":            issue.Status,
			"created_at":        issue.CreatedAt,
			"similar_count":     issue.SimilarCount,
			"ward_assigned":     issue.WardAssigned,
			"ward_name":         wardName,
			"notification_sent": issue.NotificationSent,
		},
	})
}

// DescribeImage runs the standalone image describer.
func (h *IssueHandler) DescribeImage(c *gin.Context) {
	var input struct {
		Image string `json:"image" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	if h.Describer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Image description not available",
		})
		return
	}

	result, err := h.Describer.DescribeImage(c.Request.Context(), input.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error describing issue",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck is the liveness probe.
func (h *IssueHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *IssueHandler) translate(ctx context.Context, text string) string {
	if h.Translator == nil || text == "" {
		return ""
	}
	translated, err := h.Translator.TranslateToKannada(ctx, text)
	if err != nil {
		log.Printf("translation failed, storing English only: %v", err)
		return ""
	}
	return translated
}
