package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	tabJobs         = "jobs"
	tabApplications = "applications"

	dashboardLoadFailedMessage = "Failed to load dashboard"
	jobDeletedNotice           = "Job deleted"
)

func (s *Server) handleAdmin(c *gin.Context) {
	page := adminPage{basePage: s.base(c, "Admin Dashboard"), Tab: tabJobs}
	if c.Query("tab") == tabApplications {
		page.Tab = tabApplications
	}

	data, err := s.dashboard.Load(c.Request.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to load dashboard: %v", err)
		page.Error = dashboardLoadFailedMessage
	}

	// The backend keeps applications of a deleted job; a lagging job list must not bring
	// the job back either.
	if deleted := c.Query("deleted"); deleted != "" {
		data = data.WithoutJob(deleted)
		page.Notice = jobDeletedNotice
	}
	if c.Query("error") == deleteFailedQueryValue {
		page.Error = jobDeleteFailedMessage
	}

	page.Data = data
	page.Applications = lo.Map(data.Applications, func(application models.Application, _ int) applicationRow {
		row := applicationRow{Application: application}
		if job, found := data.JobByID(application.JobID); found {
			row.Job = &job
		}
		return row
	})
	s.render(c, http.StatusOK, "admin.html", page)
}
