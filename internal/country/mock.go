package country

import (
	"context"
	"sync"
)

// MockCatalog is a mock implementation of the Catalog interface for testing.
// It is safe for concurrent use.
type MockCatalog struct {
	mu sync.Mutex

	RandomFunc      func() (CountryRecord, error)
	FindByCodeFunc  func(code string) (CountryRecord, error)
	FindByNameFunc  func(name string) (CountryRecord, error)
	SearchFunc      func(query string, limit int) []CountryRecord
	DistractorsFunc func(correct CountryRecord, n int) []CountryRecord
	OptionsFunc     func(correct CountryRecord, optionsCount int) []CountryRecord
	CountFunc       func() int

	RandomCalls     int
	RefreshCalls    int
	FindByCodeCalls []string
}

var _ Catalog = (*MockCatalog)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockCatalog {
	return &MockCatalog{}
}

func (m *MockCatalog) Random() (CountryRecord, error) {
	m.mu.Lock()
	m.RandomCalls++
	m.mu.Unlock()
	if m.RandomFunc != nil {
		return m.RandomFunc()
	}
	return CountryRecord{}, ErrCatalogEmpty
}

func (m *MockCatalog) FindByCode(code string) (CountryRecord, error) {
	m.mu.Lock()
	m.FindByCodeCalls = append(m.FindByCodeCalls, code)
	m.mu.Unlock()
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(code)
	}
	return CountryRecord{}, ErrNotFound
}

func (m *MockCatalog) FindByName(name string) (CountryRecord, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(name)
	}
	return CountryRecord{}, ErrNotFound
}

func (m *MockCatalog) Search(query string, limit int) []CountryRecord {
	if m.SearchFunc != nil {
		return m.SearchFunc(query, limit)
	}
	return nil
}

func (m *MockCatalog) Distractors(correct CountryRecord, n int) []CountryRecord {
	if m.DistractorsFunc != nil {
		return m.DistractorsFunc(correct, n)
	}
	return nil
}

func (m *MockCatalog) Options(correct CountryRecord, optionsCount int) []CountryRecord {
	if m.OptionsFunc != nil {
		return m.OptionsFunc(correct, optionsCount)
	}
	return []CountryRecord{correct}
}

func (m *MockCatalog) Count() int {
	if m.CountFunc != nil {
		return m.CountFunc()
	}
	return 0
}

func (m *MockCatalog) RefreshAsync(ctx context.Context) {
	m.mu.Lock()
	m.RefreshCalls++
	m.mu.Unlock()
}
