package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRoundsStarted()
	IncRoundsResolved()
	IncRoundsAbandoned()
	IncAnswersCorrect()
	IncAnswersIncorrect()
	ObserveResolveDuration(seconds float64)
	IncCatalogRefreshSuccess()
	IncCatalogRefreshFailure()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(seconds float64)
}
