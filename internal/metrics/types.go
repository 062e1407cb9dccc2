package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RoundsStarted          prometheus.Counter
	RoundsResolved         prometheus.Counter
	RoundsAbandoned        prometheus.Counter
	AnswersCorrect         prometheus.Counter
	AnswersIncorrect       prometheus.Counter
	ResolveDuration        prometheus.Histogram
	CatalogRefreshSuccess  prometheus.Counter
	CatalogRefreshFailure  prometheus.Counter
	SlackNotifSent         prometheus.Counter
	SlackNotifFailed       prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}
