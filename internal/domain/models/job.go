package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type Job struct {
	ID          string
	Title       string
	Description string
	Location    string
	Salary      string
	CompanyName string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// JobForm is the free-text input used to create or update a job.
type JobForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Salary      string `form:"salary" validate:"required"`
	CompanyName string `form:"companyName" validate:"required"`
}

func (f JobForm) Validate() error {
	return validateForm(f)
}

func (j Job) ToForm() JobForm {
	return JobForm{
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Salary:      j.Salary,
		CompanyName: j.CompanyName,
	}
}

// FilterJobs keeps jobs whose title, company name or location contains term, ignoring case.
// An empty term keeps everything.
func FilterJobs(jobs []Job, term string) []Job {
	term = strings.ToLower(term)
	if term == "" {
		return jobs
	}

	return lo.Filter(jobs, func(job Job, _ int) bool {
		return strings.Contains(strings.ToLower(job.Title), term) ||
			strings.Contains(strings.ToLower(job.CompanyName), term) ||
			strings.Contains(strings.ToLower(job.Location), term)
	})
}

// ExcludeJobs drops jobs whose ID is listed in ids.
func ExcludeJobs(jobs []Job, ids []string) []Job {
	if len(ids) == 0 {
		return jobs
	}
	return lo.Reject(jobs, func(job Job, _ int) bool {
		return lo.Contains(ids, job.ID)
	})
}
