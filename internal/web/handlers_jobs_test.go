package web

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/maxaizer/job-portal/internal/clients/jobboard"
	"github.com/maxaizer/job-portal/internal/domain/events"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Go Developer", CompanyName: "Acme", Location: "Remote", Salary: "120000150000"},
		{ID: "2", Title: "Frontend Engineer", CompanyName: "Globex", Location: "Berlin", Salary: "90000"},
		{ID: "3", Title: "Data Analyst", CompanyName: "Initech", Location: "Austin", Salary: "70000"},
	}
}

func validJobForm() url.Values {
	return url.Values{
		"title":       {"SRE"},
		"description": {"Keep things running"},
		"location":    {"Remote"},
		"salary":      {"$120,000 - $150,000"},
		"companyName": {"Acme"},
	}
}

func Test_Jobs_WithSearchTerm_ShouldFilterIgnoringCase(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJobs", mockAnyContext).Return(testJobs(), nil)

	rec := env.loggedInUser(t).get("/jobs?q=BERLIN")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Frontend Engineer")
	assert.NotContains(t, body, "Go Developer")
	assert.Contains(t, body, "Showing 1 of 3 jobs")
}

func Test_Jobs_ForUser_ShouldHideAppliedJobs(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJobs", mockAnyContext).Return(testJobs(), nil)
	env.api.On("GetJob", mockAnyContext, "1").Return(&testJobs()[0], nil)
	env.api.On("Apply", mockAnyContext, "1", models.ApplicationForm{ApplicantName: "Jane", ApplicantEmail: "jane@example.com"}).
		Return(&models.Application{ID: "a1", JobID: "1"}, nil)
	b := env.loggedInUser(t)

	b.post("/apply/1", url.Values{"applicantName": {"Jane"}, "applicantEmail": {"jane@example.com"}})
	rec := b.get("/jobs")

	body := rec.Body.String()
	assert.NotContains(t, body, "Go Developer")
	assert.Contains(t, body, "Frontend Engineer")
	assert.Contains(t, body, "1 already applied")
}

func Test_Jobs_ForAdmin_ShouldShowAllJobsWithManageActions(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJobs", mockAnyContext).Return(testJobs(), nil)

	rec := env.loggedInAdmin(t).get("/jobs")

	body := rec.Body.String()
	assert.Equal(t, 3, strings.Count(body, `action="/delete-job/`))
	assert.Contains(t, body, `href="/edit-job/2"`)
	assert.Contains(t, body, `href="/admin"`)
	assert.NotContains(t, body, `href="/apply/`)
}

func Test_Jobs_WhenApiFails_ShouldShowErrorPanel(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJobs", mockAnyContext).Return(nil, errors.New("unavailable"))

	rec := env.loggedInUser(t).get("/jobs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load jobs")
	assert.Contains(t, rec.Body.String(), "No jobs found")
}

func Test_AddJob_ShouldCreatePublishAndRefreshToJobs(t *testing.T) {
	env := newTestEnv(t)
	form := models.JobForm{Title: "SRE", Description: "Keep things running", Location: "Remote",
		Salary: "$120,000 - $150,000", CompanyName: "Acme"}
	env.api.On("CreateJob", mockAnyContext, form).Return(&models.Job{ID: "9", Title: "SRE"}, nil).Once()

	var published events.JobCreated
	require.NoError(t, env.bus.Subscribe(events.JobCreatedTopic, func(event events.JobCreated) { published = event }))

	rec := env.loggedInAdmin(t).post("/add-job", validJobForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job Posted Successfully!")
	assert.Contains(t, rec.Body.String(), `content="2;url=/jobs"`)
	assert.Equal(t, "9", published.Job.ID)
	assert.Equal(t, "admin@example.com", published.CreatedBy)
	env.api.AssertExpectations(t)
}

func Test_AddJob_WithMissingFields_ShouldNotCallApi(t *testing.T) {
	env := newTestEnv(t)
	form := validJobForm()
	form.Del("salary")

	rec := env.loggedInAdmin(t).post("/add-job", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required")
	env.api.AssertNotCalled(t, "CreateJob", mockAnyContext, mockAnyContext)
}

func Test_AddJob_WhenApiFails_ShouldKeepForm(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("CreateJob", mockAnyContext, mockAnyContext).Return(nil, jobboard.ErrSalaryOutOfRange)

	rec := env.loggedInAdmin(t).post("/add-job", validJobForm())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to create job")
	assert.Contains(t, rec.Body.String(), `value="SRE"`)
}

func Test_EditJobPage_ShouldPrefillForm(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJob", mockAnyContext, "2").Return(&testJobs()[1], nil)

	rec := env.loggedInAdmin(t).get("/edit-job/2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Frontend Engineer"`)
	assert.Contains(t, rec.Body.String(), `action="/edit-job/2"`)
}

func Test_EditJobPage_WhenMissingOrFailing_ShouldShowErrorState(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJob", mockAnyContext, "404").Return(nil, jobboard.ErrNotFound)
	env.api.On("GetJob", mockAnyContext, "500").Return(nil, errors.New("boom"))
	b := env.loggedInAdmin(t)

	rec := b.get("/edit-job/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job not found")
	assert.NotContains(t, rec.Body.String(), "<form method=\"post\" action=\"/edit-job")

	rec = b.get("/edit-job/500")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load job details")
}

func Test_EditJob_ShouldUpdateAndPublish(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("UpdateJob", mockAnyContext, "2", mockAnyContext).Return(&models.Job{ID: "2", Title: "SRE"}, nil).Once()

	var published events.JobUpdated
	require.NoError(t, env.bus.Subscribe(events.JobUpdatedTopic, func(event events.JobUpdated) { published = event }))

	rec := env.loggedInAdmin(t).post("/edit-job/2", validJobForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job Updated Successfully!")
	assert.Equal(t, "2", published.Job.ID)
}

func Test_EditJob_WhenApiFails_ShouldShowErrorPanel(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("UpdateJob", mockAnyContext, "2", mockAnyContext).Return(nil, errors.New("boom"))

	rec := env.loggedInAdmin(t).post("/edit-job/2", validJobForm())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to update job")
}

func Test_DeleteJob_ShouldRedirectBackToOrigin(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("DeleteJob", mockAnyContext, "1").Return(nil)

	var published events.JobDeleted
	require.NoError(t, env.bus.Subscribe(events.JobDeletedTopic, func(event events.JobDeleted) { published = event }))
	b := env.loggedInAdmin(t)

	rec := b.post("/delete-job/1", url.Values{"return_to": {"/jobs"}, "title": {"Go Developer"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/jobs", rec.Header().Get("Location"))
	assert.Equal(t, events.JobDeleted{JobID: "1", Title: "Go Developer", DeletedBy: "admin@example.com"}, published)

	rec = b.post("/delete-job/1", url.Values{"return_to": {"/admin"}})
	assert.Equal(t, "/admin?deleted=1", rec.Header().Get("Location"))

	rec = b.post("/delete-job/1", url.Values{"return_to": {"https://evil.example.com"}})
	assert.Equal(t, "/jobs", rec.Header().Get("Location"))
}

func Test_DeleteJob_WhenApiFails_ShouldRedirectWithError(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("DeleteJob", mockAnyContext, "1").Return(errors.New("boom"))
	env.api.On("GetJobs", mockAnyContext).Return(testJobs(), nil)
	b := env.loggedInAdmin(t)

	rec := b.post("/delete-job/1", url.Values{"return_to": {"/jobs"}})
	require.Equal(t, "/jobs?error=delete", rec.Header().Get("Location"))

	rec = b.get("/jobs?error=delete")
	assert.Contains(t, rec.Body.String(), "Failed to delete job")
	assert.Contains(t, rec.Body.String(), "Go Developer")
}

func Test_KnownPageWithWrongMethod_ShouldRedirectHome(t *testing.T) {
	env := newTestEnv(t)

	rec := env.loggedInAdmin(t).get("/delete-job/1")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	env.api.AssertNotCalled(t, "DeleteJob", mockAnyContext, "1")
}
