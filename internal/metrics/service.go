package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_rounds_started_total",
			Help: "The total number of quiz rounds started.",
		}),
		RoundsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_rounds_resolved_total",
			Help: "The total number of quiz rounds resolved with an answer.",
		}),
		RoundsAbandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_rounds_abandoned_total",
			Help: "The total number of quiz rounds abandoned without an answer.",
		}),
		AnswersCorrect: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_answers_correct_total",
			Help: "The total number of correct answers.",
		}),
		AnswersIncorrect: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_answers_incorrect_total",
			Help: "The total number of incorrect answers.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiz_round_resolve_duration_seconds",
			Help:    "The duration of individual answer resolutions.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CatalogRefreshSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_catalog_refresh_success_total",
			Help: "The total number of successful country catalog refreshes.",
		}),
		CatalogRefreshFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_catalog_refresh_failure_total",
			Help: "The total number of failed country catalog refresh attempts.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quiz_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RoundsStarted,
		s.RoundsResolved,
		s.RoundsAbandoned,
		s.AnswersCorrect,
		s.AnswersIncorrect,
		s.ResolveDuration,
		s.CatalogRefreshSuccess,
		s.CatalogRefreshFailure,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRoundsStarted()    { s.RoundsStarted.Inc() }
func (s *Service) IncRoundsResolved()   { s.RoundsResolved.Inc() }
func (s *Service) IncRoundsAbandoned()  { s.RoundsAbandoned.Inc() }
func (s *Service) IncAnswersCorrect()   { s.AnswersCorrect.Inc() }
func (s *Service) IncAnswersIncorrect() { s.AnswersIncorrect.Inc() }

func (s *Service) ObserveResolveDuration(seconds float64) { s.ResolveDuration.Observe(seconds) }

func (s *Service) IncCatalogRefreshSuccess() { s.CatalogRefreshSuccess.Inc() }
func (s *Service) IncCatalogRefreshFailure() { s.CatalogRefreshFailure.Inc() }
func (s *Service) IncSlackNotifSent()        { s.SlackNotifSent.Inc() }
func (s *Service) IncSlackNotifFailed()      { s.SlackNotifFailed.Inc() }

func (s *Service) SetStartupTime(seconds float64) { s.StartupTimeSeconds.Set(seconds) }
