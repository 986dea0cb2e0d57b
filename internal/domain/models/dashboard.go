package models

import "github.com/samber/lo"

// DashboardData is the admin view of every job and the applications gathered for them.
type DashboardData struct {
	Jobs         []Job
	Applications []Application
}

func (d DashboardData) JobByID(id string) (Job, bool) {
	return lo.Find(d.Jobs, func(job Job) bool { return job.ID == id })
}

// WithoutJob drops the job and its applications from the aggregate. Nothing is removed
// on the backend: applications of a deleted job stay there.
func (d DashboardData) WithoutJob(id string) DashboardData {
	return DashboardData{
		Jobs: lo.Reject(d.Jobs, func(job Job, _ int) bool { return job.ID == id }),
		Applications: lo.Reject(d.Applications, func(app Application, _ int) bool {
			return app.JobID == id
		}),
	}
}
