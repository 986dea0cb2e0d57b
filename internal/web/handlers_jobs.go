package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/clients/jobboard"
	"github.com/maxaizer/job-portal/internal/domain/events"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	jobNotFoundMessage       = "Job not found"
	jobLoadFailedMessage     = "Failed to load job details"
	jobsLoadFailedMessage    = "Failed to load jobs"
	jobCreateFailedMessage   = "Failed to create job"
	jobUpdateFailedMessage   = "Failed to update job"
	jobDeleteFailedMessage   = "Failed to delete job"
	deleteFailedQueryValue   = "delete"
	jobCreatedSuccessMessage = "Job Posted Successfully!"
	jobUpdatedSuccessMessage = "Job Updated Successfully!"
)

var homeStats = []stat{
	{Label: "Active Jobs", Value: "1,200+"},
	{Label: "Companies", Value: "450+"},
	{Label: "Locations", Value: "25+"},
	{Label: "Successful Hires", Value: "3,400+"},
}

func (s *Server) handleHome(c *gin.Context) {
	s.render(c, http.StatusOK, "home.html", homePage{basePage: s.base(c, "Home"), Stats: homeStats})
}

func (s *Server) handleJobs(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)
	page := jobsPage{basePage: s.base(c, "All Jobs"), Query: c.Query("q")}

	jobs, err := s.api.GetJobs(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to load jobs: %v", err)
		page.Error = jobsLoadFailedMessage
	}
	if c.Query("error") == deleteFailedQueryValue {
		page.Error = jobDeleteFailedMessage
	}

	applied, err := sess.AppliedJobs(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to load applied jobs: %v", err)
	}

	visible := models.FilterJobs(jobs, page.Query)
	if !sess.IsAdmin() {
		visible = models.ExcludeJobs(visible, applied)
		page.AppliedCount = len(applied)
	}

	page.Total = len(jobs)
	page.Cards = lo.Map(visible, func(job models.Job, _ int) jobCard {
		return jobCard{Job: job, Applied: lo.Contains(applied, job.ID)}
	})
	s.render(c, http.StatusOK, "jobs.html", page)
}

func (s *Server) handleAddJobPage(c *gin.Context) {
	s.render(c, http.StatusOK, "job_form.html", s.addJobPage(c, models.JobForm{}))
}

func (s *Server) handleAddJob(c *gin.Context) {
	var form models.JobForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debugf("failed to bind job form: %v", err)
	}

	page := s.addJobPage(c, form)
	if err := form.Validate(); err != nil {
		page.formErrors = newFormErrors(err)
		s.render(c, http.StatusBadRequest, "job_form.html", page)
		return
	}

	job, err := s.api.CreateJob(c.Request.Context(), form)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to create job: %v", err)
		page.Error = jobCreateFailedMessage
		s.render(c, http.StatusBadGateway, "job_form.html", page)
		return
	}

	s.bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: *job, CreatedBy: page.User.Email})
	page.Success = jobCreatedSuccessMessage
	page.Redirecting = true
	s.render(c, http.StatusOK, "job_form.html", page)
}

func (s *Server) addJobPage(c *gin.Context, form models.JobForm) jobFormPage {
	return jobFormPage{
		basePage:    s.base(c, "Add New Job"),
		Action:      "/add-job",
		SubmitLabel: "Post Job",
		Form:        form,
	}
}

func (s *Server) handleEditJobPage(c *gin.Context) {
	id := c.Param("id")
	page := s.editJobPage(c, id, models.JobForm{})

	job, status, message := s.loadJob(c.Request.Context(), id)
	if job == nil {
		page.Missing = true
		page.Error = message
		s.render(c, status, "job_form.html", page)
		return
	}

	page.Form = job.ToForm()
	s.render(c, http.StatusOK, "job_form.html", page)
}

func (s *Server) handleEditJob(c *gin.Context) {
	id := c.Param("id")

	var form models.JobForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debugf("failed to bind job form: %v", err)
	}

	page := s.editJobPage(c, id, form)
	if err := form.Validate(); err != nil {
		page.formErrors = newFormErrors(err)
		s.render(c, http.StatusBadRequest, "job_form.html", page)
		return
	}

	job, err := s.api.UpdateJob(c.Request.Context(), id, form)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to update job %v: %v", id, err)
		page.Error = jobUpdateFailedMessage
		s.render(c, http.StatusBadGateway, "job_form.html", page)
		return
	}

	s.bus.Publish(events.JobUpdatedTopic, events.JobUpdated{Job: *job, UpdatedBy: page.User.Email})
	page.Success = jobUpdatedSuccessMessage
	page.Redirecting = true
	s.render(c, http.StatusOK, "job_form.html", page)
}

func (s *Server) editJobPage(c *gin.Context, id string, form models.JobForm) jobFormPage {
	return jobFormPage{
		basePage:    s.base(c, "Edit Job"),
		Action:      "/edit-job/" + url.PathEscape(id),
		SubmitLabel: "Update Job",
		Form:        form,
	}
}

// handleDeleteJob deletes the job and sends the browser back to the page it came from.
// Applications of the job are left on the backend.
func (s *Server) handleDeleteJob(c *gin.Context) {
	id := c.Param("id")
	returnTo := deleteReturnPath(c.PostForm("return_to"))

	if err := s.api.DeleteJob(c.Request.Context(), id); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to delete job %v: %v", id, err)
		redirectAfterPost(c, returnTo+"?error="+deleteFailedQueryValue)
		return
	}

	s.bus.Publish(events.JobDeletedTopic, events.JobDeleted{
		JobID:     id,
		Title:     c.PostForm("title"),
		DeletedBy: currentSession(c).User().Email,
	})

	if returnTo == adminPath {
		redirectAfterPost(c, adminPath+"?deleted="+url.QueryEscape(id))
		return
	}
	redirectAfterPost(c, returnTo)
}

func deleteReturnPath(requested string) string {
	if requested == adminPath {
		return adminPath
	}
	return jobsPath
}

// loadJob fetches a job for a page. On failure it returns the status and panel message
// to show instead.
func (s *Server) loadJob(ctx context.Context, id string) (*models.Job, int, string) {
	job, err := s.api.GetJob(ctx, id)
	if errors.Is(err, jobboard.ErrNotFound) {
		return nil, http.StatusNotFound, jobNotFoundMessage
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).Errorf("failed to load job %v: %v", id, err)
		return nil, http.StatusBadGateway, jobLoadFailedMessage
	}
	return job, http.StatusOK, ""
}
