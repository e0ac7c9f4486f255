package routes

import (
	"wardwatch-be/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes registers the issue-reporting surface. rateLimiter may be nil
// when Redis is not configured.
func IssueRoutes(r *gin.Engine, h *controllers.IssueHandler, rateLimiter gin.HandlerFunc) {
	if rateLimiter != nil {
		r.POST("/report-issue", rateLimiter, h.ReportIssue)
	} else {
		r.POST("/report-issue", h.ReportIssue)
	}
	r.POST("/check-duplicate", h.CheckDuplicate)
	r.GET("/issues-nearby", h.IssuesNearby)
	r.GET("/issue/:issue_id", h.GetIssue)
	r.POST("/describe", h.DescribeImage)
	r.GET("/health", h.HealthCheck)
}
