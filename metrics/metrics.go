package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "The total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	JobRuns = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_job_runs_total",
			Help: "The total number of scheduled job runs by job and result",
		},
		[]string{"job", "result"},
	)

	CustomersDeleted = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crm_customers_deleted_total",
			Help: "The total number of inactive customers deleted by the cleanup job",
		},
	)

	RemindersLogged = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crm_order_reminders_total",
			Help: "The total number of order reminder lines written",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
