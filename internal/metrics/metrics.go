package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_api_request_duration_seconds",
			Help:    "Duration of job board API calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	LoginsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_logins_total",
			Help: "Total number of login attempts by result.",
		},
		[]string{"result"},
	)
	SubmittedApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_applications_submitted_total",
			Help: "Total number of submitted applications.",
		},
	)
	OmittedApplicationListsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_dashboard_omitted_application_lists_total",
			Help: "Total number of per-job application lists left out of the dashboard after a failure.",
		},
	)
)

func Register() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(LoginsCounter)
	prometheus.MustRegister(SubmittedApplicationsCounter)
	prometheus.MustRegister(OmittedApplicationListsCounter)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
