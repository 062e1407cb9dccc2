package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	roundsStarted         int
	roundsResolved        int
	roundsAbandoned       int
	answersCorrect        int
	answersIncorrect      int
	resolveDurations      []float64
	catalogRefreshSuccess int
	catalogRefreshFailure int
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		resolveDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRoundsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsStarted++
}

func (m *Mock) IncRoundsResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsResolved++
}

func (m *Mock) IncRoundsAbandoned() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsAbandoned++
}

func (m *Mock) IncAnswersCorrect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersCorrect++
}

func (m *Mock) IncAnswersIncorrect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersIncorrect++
}

func (m *Mock) ObserveResolveDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveDurations = append(m.resolveDurations, seconds)
}

func (m *Mock) IncCatalogRefreshSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogRefreshSuccess++
}

func (m *Mock) IncCatalogRefreshFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogRefreshFailure++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// RoundsStarted returns the number of times IncRoundsStarted was called.
func (m *Mock) RoundsStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsStarted
}

// RoundsResolved returns the number of times IncRoundsResolved was called.
func (m *Mock) RoundsResolved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsResolved
}

// RoundsAbandoned returns the number of times IncRoundsAbandoned was called.
func (m *Mock) RoundsAbandoned() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsAbandoned
}

// AnswersCorrect returns the number of times IncAnswersCorrect was called.
func (m *Mock) AnswersCorrect() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answersCorrect
}

// AnswersIncorrect returns the number of times IncAnswersIncorrect was called.
func (m *Mock) AnswersIncorrect() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answersIncorrect
}

// CatalogRefreshSuccess returns the number of successful refreshes recorded.
func (m *Mock) CatalogRefreshSuccess() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalogRefreshSuccess
}

// CatalogRefreshFailure returns the number of failed refresh attempts recorded.
func (m *Mock) CatalogRefreshFailure() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalogRefreshFailure
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
