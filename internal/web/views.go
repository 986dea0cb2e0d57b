package web

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/domain/models"
)

type navItem struct {
	Path   string
	Label  string
	Active bool
}

// basePage carries what the layout needs on every page.
type basePage struct {
	Title       string
	User        *models.User
	Nav         []navItem
	Error       string
	Redirecting bool
}

func (s *Server) base(c *gin.Context, title string) basePage {
	sess := currentSession(c)

	items := []navItem{{Path: "/", Label: "Home"}, {Path: "/jobs", Label: "All Jobs"}}
	if sess.IsAdmin() {
		items = append(items, navItem{Path: "/add-job", Label: "Add Job"}, navItem{Path: "/admin", Label: "Dashboard"})
	}
	for i := range items {
		items[i].Active = items[i].Path == c.Request.URL.Path
	}

	return basePage{Title: title, User: sess.User(), Nav: items}
}

// formErrors remembers which form fields failed validation.
type formErrors struct {
	validation *models.ValidationError
}

func newFormErrors(err error) formErrors {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return formErrors{validation: validationErr}
	}
	return formErrors{}
}

func (f formErrors) Invalid(field string) bool {
	return f.validation != nil && f.validation.Has(field)
}

type stat struct {
	Label string
	Value string
}

type homePage struct {
	basePage
	Stats []stat
}

type loginPage struct {
	basePage
	Email string
}

type jobCard struct {
	Job     models.Job
	Applied bool
}

type jobsPage struct {
	basePage
	Query        string
	Total        int
	AppliedCount int
	Cards        []jobCard
}

type applyPage struct {
	basePage
	formErrors
	JobID          string
	Job            *models.Job
	Form           models.ApplicationForm
	AlreadyApplied bool
}

func (p *applyPage) withJob(job *models.Job) {
	p.Job = job
	p.JobID = job.ID
	p.Title = "Apply for " + job.Title
}

type applicationPage struct {
	basePage
	Job         *models.Job
	Application *models.Application
}

type jobFormPage struct {
	basePage
	formErrors
	Action      string
	SubmitLabel string
	Form        models.JobForm
	Success     string
	Missing     bool
}

type applicationRow struct {
	Application models.Application
	Job         *models.Job
}

type adminPage struct {
	basePage
	Tab          string
	Notice       string
	Data         models.DashboardData
	Applications []applicationRow
}
