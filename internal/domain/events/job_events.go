package events

import "github.com/maxaizer/job-portal/internal/domain/models"

var (
	JobCreatedTopic = "JobCreatedEvent"
	JobUpdatedTopic = "JobUpdatedEvent"
	JobDeletedTopic = "JobDeletedEvent"
)

type JobCreated struct {
	Job       models.Job
	CreatedBy string
}

type JobUpdated struct {
	Job       models.Job
	UpdatedBy string
}

type JobDeleted struct {
	JobID     string
	Title     string
	DeletedBy string
}
