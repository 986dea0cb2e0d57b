package events

import "github.com/maxaizer/job-portal/internal/domain/models"

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	Application models.Application
	JobTitle    string
}
