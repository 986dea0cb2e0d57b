package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type jobsAPI interface {
	GetJobs(ctx context.Context) ([]models.Job, error)
	GetApplications(ctx context.Context, jobID string) ([]models.Application, error)
}

// Dashboard assembles the admin dashboard: every job plus the applications submitted to it.
type Dashboard struct {
	api jobsAPI
}

func NewDashboard(api jobsAPI) *Dashboard {
	return &Dashboard{api: api}
}

func (d *Dashboard) Load(ctx context.Context) (models.DashboardData, error) {
	jobs, err := d.api.GetJobs(ctx)
	if err != nil {
		return models.DashboardData{}, fmt.Errorf("failed to load jobs: %w", err)
	}

	return models.DashboardData{
		Jobs:         jobs,
		Applications: d.GatherApplications(ctx, jobs),
	}, nil
}

type applicationsResult struct {
	applications []models.Application
	err          error
}

// GatherApplications requests the applications of every job concurrently and concatenates
// them in job order. Jobs whose request fails contribute nothing.
func (d *Dashboard) GatherApplications(ctx context.Context, jobs []models.Job) []models.Application {
	results := make([]applicationsResult, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, jobID string) {
			defer wg.Done()
			applications, err := d.api.GetApplications(ctx, jobID)
			results[i] = applicationsResult{applications: applications, err: err}
		}(i, job.ID)
	}
	wg.Wait()

	for i, result := range results {
		if result.err != nil {
			metrics.OmittedApplicationListsCounter.Inc()
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobsApi).
				Errorf("failed to load applications for job %v: %v", jobs[i].ID, result.err)
		}
	}

	return lo.FlatMap(results, func(result applicationsResult, _ int) []models.Application {
		return result.applications
	})
}
