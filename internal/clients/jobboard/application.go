package jobboard

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/samber/lo"
)

type applicationRecord struct {
	ID          string     `json:"_id"`
	JobID       string     `json:"jobId"`
	UserName    string     `json:"userName"`
	UserEmail   string     `json:"userEmail"`
	Status      string     `json:"status"`
	DateApplied *time.Time `json:"dateApplied"`
}

func (r applicationRecord) toModel() models.Application {
	return models.Application{
		ID:             r.ID,
		JobID:          r.JobID,
		ApplicantName:  r.UserName,
		ApplicantEmail: r.UserEmail,
		Status:         models.ParseApplicationStatus(r.Status),
		AppliedAt:      r.DateApplied,
	}
}

type applicationPayload struct {
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// Apply submits an application; the backend assigns its ID and applied-at time.
func (c *Client) Apply(ctx context.Context, jobID string, form models.ApplicationForm) (*models.Application, error) {

	payload := applicationPayload{UserName: form.ApplicantName, UserEmail: form.ApplicantEmail}

	body, err := c.sendRequest(ctx, "apply", http.MethodPost, "/apply/"+url.PathEscape(jobID), payload)
	if err != nil {
		return nil, err
	}

	record, err := decode[applicationRecord](body)
	if err != nil {
		return nil, err
	}

	application := record.toModel()
	return &application, nil
}

func (c *Client) GetApplications(ctx context.Context, jobID string) ([]models.Application, error) {

	body, err := c.sendRequest(ctx, "list_applications", http.MethodGet,
		"/jobs/"+url.PathEscape(jobID)+"/applications", nil)
	if err != nil {
		return nil, err
	}

	records, err := decode[[]applicationRecord](body)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r applicationRecord, _ int) models.Application { return r.toModel() }), nil
}
