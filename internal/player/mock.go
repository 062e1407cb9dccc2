package player

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	GetOrCreateFunc  func(chatID int64, username, firstName, lastName string) (*Player, error)
	FindFunc           func(chatID int64) (*Player, error)
	FindByUsernameFunc func(username string) (*Player, error)
	ExistsFunc       func(chatID int64) bool
	ApplyOutcomeFunc func(chatID int64, isCorrect bool, points int) (*Player, error)
	TopPlayersFunc   func(n int) ([]Player, error)
	AllFunc          func() ([]Player, error)
	StatsSummaryFunc func(chatID int64) (*StatsSummary, error)
	ResetStatsFunc   func(chatID int64) error
	DeleteFunc       func(chatID int64) error
	ClearFunc        func() error

	GetOrCreateCalls []int64
	ApplyOutcomeCalls []struct {
		ChatID    int64
		IsCorrect bool
		Points    int
	}
	ResetStatsCalls []int64
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetOrCreate(chatID int64, username, firstName, lastName string) (*Player, error) {
	m.mu.Lock()
	m.GetOrCreateCalls = append(m.GetOrCreateCalls, chatID)
	m.mu.Unlock()
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(chatID, username, firstName, lastName)
	}
	return &Player{ChatID: chatID, Username: username, FirstName: firstName, LastName: lastName}, nil
}

func (m *MockStore) Find(chatID int64) (*Player, error) {
	if m.FindFunc != nil {
		return m.FindFunc(chatID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) FindByUsername(username string) (*Player, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(username)
	}
	return nil, ErrNotFound
}

func (m *MockStore) Exists(chatID int64) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(chatID)
	}
	return false
}

func (m *MockStore) ApplyOutcome(chatID int64, isCorrect bool, points int) (*Player, error) {
	m.mu.Lock()
	m.ApplyOutcomeCalls = append(m.ApplyOutcomeCalls, struct {
		ChatID    int64
		IsCorrect bool
		Points    int
	}{chatID, isCorrect, points})
	m.mu.Unlock()
	if m.ApplyOutcomeFunc != nil {
		return m.ApplyOutcomeFunc(chatID, isCorrect, points)
	}
	return &Player{ChatID: chatID}, nil
}

func (m *MockStore) TopPlayers(n int) ([]Player, error) {
	if m.TopPlayersFunc != nil {
		return m.TopPlayersFunc(n)
	}
	return []Player{}, nil
}

func (m *MockStore) All() ([]Player, error) {
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return []Player{}, nil
}

func (m *MockStore) StatsSummary(chatID int64) (*StatsSummary, error) {
	if m.StatsSummaryFunc != nil {
		return m.StatsSummaryFunc(chatID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ResetStats(chatID int64) error {
	m.mu.Lock()
	m.ResetStatsCalls = append(m.ResetStatsCalls, chatID)
	m.mu.Unlock()
	if m.ResetStatsFunc != nil {
		return m.ResetStatsFunc(chatID)
	}
	return nil
}

func (m *MockStore) Delete(chatID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(chatID)
	}
	return nil
}

func (m *MockStore) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
