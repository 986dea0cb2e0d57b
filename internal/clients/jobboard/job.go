package jobboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/samber/lo"
)

// displayString accepts a JSON string or number and keeps its text.
type displayString string

func (s *displayString) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = displayString(str)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("salary is neither string nor number: %s", string(trimmed))
	}
	*s = displayString(number.String())
	return nil
}

type jobRecord struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Salary      displayString `json:"salary"`
	Company     string        `json:"company"`
	CreatedAt   *time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt"`
}

func (r jobRecord) toModel() models.Job {
	return models.Job{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Salary:      string(r.Salary),
		CompanyName: r.Company,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type jobPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Salary      *int64 `json:"salary"`
	Company     string `json:"company"`
}

func newJobPayload(form models.JobForm) (jobPayload, error) {
	salary, err := ParseSalary(form.Salary)
	if err != nil {
		return jobPayload{}, err
	}
	return jobPayload{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Salary:      salary,
		Company:     form.CompanyName,
	}, nil
}

func (c *Client) GetJobs(ctx context.Context) ([]models.Job, error) {

	body, err := c.sendRequest(ctx, "list_jobs", http.MethodGet, "/jobs", nil)
	if err != nil {
		return nil, err
	}

	records, err := decode[[]jobRecord](body)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r jobRecord, _ int) models.Job { return r.toModel() }), nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {

	body, err := c.sendRequest(ctx, "get_job", http.MethodGet, "/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	return decodeJob(body)
}

func (c *Client) CreateJob(ctx context.Context, form models.JobForm) (*models.Job, error) {

	payload, err := newJobPayload(form)
	if err != nil {
		return nil, err
	}

	body, err := c.sendRequest(ctx, "create_job", http.MethodPost, "/jobs", payload)
	if err != nil {
		return nil, err
	}

	return decodeJob(body)
}

func (c *Client) UpdateJob(ctx context.Context, id string, form models.JobForm) (*models.Job, error) {

	payload, err := newJobPayload(form)
	if err != nil {
		return nil, err
	}

	body, err := c.sendRequest(ctx, "update_job", http.MethodPut, "/jobs/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}

	return decodeJob(body)
}

// DeleteJob removes only the job; its applications are left on the backend.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.sendRequest(ctx, "delete_job", http.MethodDelete, "/jobs/"+url.PathEscape(id), nil)
	return err
}

func decodeJob(body []byte) (*models.Job, error) {
	if isEmptyBody(body) {
		return nil, ErrNotFound
	}

	record, err := decode[jobRecord](body)
	if err != nil {
		return nil, err
	}

	job := record.toModel()
	return &job, nil
}
