package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/clients/jobboard"
	"github.com/maxaizer/job-portal/internal/domain/events"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	applySubmitFailedMessage     = "Failed to submit application"
	applicationLoadFailedMessage = "Failed to load application details"
)

func (s *Server) handleApplyPage(c *gin.Context) {
	ctx := c.Request.Context()
	page := applyPage{basePage: s.base(c, "Apply")}

	job, status, message := s.loadJob(ctx, c.Param("id"))
	if job == nil {
		page.Error = message
		s.render(c, status, "apply.html", page)
		return
	}
	page.withJob(job)

	applied, err := currentSession(c).HasApplied(ctx, job.ID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to read applied jobs: %v", err)
	}
	page.AlreadyApplied = applied

	s.render(c, http.StatusOK, "apply.html", page)
}

// handleApply submits the application for the job in the route, records the job as applied
// for this browser and shows the submitted application. The job itself is only looked up
// for display, so a failing lookup never blocks the submission.
func (s *Server) handleApply(c *gin.Context) {
	ctx := c.Request.Context()
	jobID := c.Param("id")
	page := applyPage{basePage: s.base(c, "Apply"), JobID: jobID}

	if err := c.ShouldBind(&page.Form); err != nil {
		log.Debugf("failed to bind application form: %v", err)
	}

	if err := page.Form.Validate(); err != nil {
		page.formErrors = newFormErrors(err)
		s.renderApplyFailure(c, http.StatusBadRequest, page)
		return
	}

	application, err := s.api.Apply(ctx, jobID, page.Form)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to apply for job %v: %v", jobID, err)
		page.Error = applySubmitFailedMessage
		s.renderApplyFailure(c, http.StatusBadGateway, page)
		return
	}

	if err = currentSession(c).MarkApplied(ctx, jobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to mark job %v as applied: %v", jobID, err)
	}
	metrics.SubmittedApplicationsCounter.Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		Application: *application,
		JobTitle:    s.jobTitle(ctx, jobID),
	})

	redirectAfterPost(c, applicationPath(jobID, application.ID))
}

func (s *Server) renderApplyFailure(c *gin.Context, status int, page applyPage) {
	if job, err := s.api.GetJob(c.Request.Context(), page.JobID); err == nil {
		page.withJob(job)
	} else {
		log.Debugf("job %v unavailable for apply form: %v", page.JobID, err)
	}
	s.render(c, status, "apply.html", page)
}

// jobTitle falls back to the job id when the job cannot be fetched.
func (s *Server) jobTitle(ctx context.Context, jobID string) string {
	job, err := s.api.GetJob(ctx, jobID)
	if err != nil {
		log.Debugf("job %v unavailable for application event: %v", jobID, err)
		return jobID
	}
	return job.Title
}

func applicationPath(jobID, applicationID string) string {
	return fmt.Sprintf("/jobs/%s/applications/%s", url.PathEscape(jobID), url.PathEscape(applicationID))
}

// handleApplicationDetails shows an application next to its job. A missing job or
// application only leaves its half of the page empty.
func (s *Server) handleApplicationDetails(c *gin.Context) {
	ctx := c.Request.Context()
	jobID, applicationID := c.Param("jobId"), c.Param("applicationId")
	page := applicationPage{basePage: s.base(c, "Application Details")}

	job, err := s.api.GetJob(ctx, jobID)
	if err != nil && !errors.Is(err, jobboard.ErrNotFound) {
		s.renderApplicationFailure(c, page, err)
		return
	}
	page.Job = job

	applications, err := s.api.GetApplications(ctx, jobID)
	if err != nil {
		s.renderApplicationFailure(c, page, err)
		return
	}

	if application, found := lo.Find(applications, func(a models.Application) bool {
		return a.ID == applicationID
	}); found {
		page.Application = &application
	}
	s.render(c, http.StatusOK, "application.html", page)
}

func (s *Server) renderApplicationFailure(c *gin.Context, page applicationPage, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to load application details: %v", err)
	page.Error = applicationLoadFailedMessage
	s.render(c, http.StatusBadGateway, "application.html", page)
}
