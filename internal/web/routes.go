package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/guard"
	"github.com/maxaizer/job-portal/internal/metrics"
)

const (
	jobsPath  = "/jobs"
	adminPath = "/admin"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	pages := s.engine.Group("/", s.browserSession(), s.guardPages())

	pages.GET("/login", s.handleLoginPage)
	pages.POST("/login", s.handleLogin)
	pages.POST("/logout", s.handleLogout)

	pages.GET("/", s.handleHome)
	pages.GET(jobsPath, s.handleJobs)
	pages.GET("/apply/:id", s.handleApplyPage)
	pages.POST("/apply/:id", s.handleApply)
	pages.GET("/jobs/:jobId/applications/:applicationId", s.handleApplicationDetails)

	pages.GET("/add-job", s.handleAddJobPage)
	pages.POST("/add-job", s.handleAddJob)
	pages.GET("/edit-job/:id", s.handleEditJobPage)
	pages.POST("/edit-job/:id", s.handleEditJob)
	pages.POST("/delete-job/:id", s.handleDeleteJob)
	pages.GET(adminPath, s.handleAdmin)

	s.engine.NoRoute(s.browserSession(), s.guardPages(), s.handleUnmatched)
}

// handleUnmatched is reached only when the guard allowed the path, i.e. a known page was
// requested with a method it does not serve.
func (s *Server) handleUnmatched(c *gin.Context) {
	c.Redirect(http.StatusFound, guard.DefaultPath)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
