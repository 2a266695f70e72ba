package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
)

type sampleKey struct {
	source      domain.RecordSource
	granularity domain.Granularity
}

// MockSampleRepository is a mock implementation of domain.SampleRepository
type MockSampleRepository struct {
	mu          sync.Mutex
	Samples     map[sampleKey][]domain.Sample
	DailyRates  map[int64][]domain.Sample
	Queries     []domain.SampleQuery
	AggregateFn func(ctx context.Context, q domain.SampleQuery) ([]domain.Sample, error)
}

// NewMockSampleRepository creates a new MockSampleRepository
func NewMockSampleRepository() *MockSampleRepository {
	return &MockSampleRepository{
		Samples:    make(map[sampleKey][]domain.Sample),
		DailyRates: make(map[int64][]domain.Sample),
	}
}

// AddSamples registers samples returned for queries of the given source and granularity
func (m *MockSampleRepository) AddSamples(source domain.RecordSource, g domain.Granularity, samples ...domain.Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := sampleKey{source: source, granularity: g}
	m.Samples[key] = append(m.Samples[key], samples...)
}

// Aggregate returns the registered samples whose period does not end before q.Since
func (m *MockSampleRepository) Aggregate(ctx context.Context, q domain.SampleQuery) ([]domain.Sample, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, q)
	fn := m.AggregateFn
	samples := slices.Clone(m.Samples[sampleKey{source: q.Source, granularity: q.Granularity}])
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, q)
	}
	return filterSince(samples, q.Since), nil
}

// AverageDailyRates returns the registered daily rate samples of a project
func (m *MockSampleRepository) AverageDailyRates(ctx context.Context, projectID int64, since time.Time) ([]domain.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterSince(m.DailyRates[projectID], since), nil
}

func filterSince(samples []domain.Sample, since time.Time) []domain.Sample {
	if since.IsZero() {
		return samples
	}
	var result []domain.Sample
	for _, s := range samples {
		if !s.Period.End().Before(since) {
			result = append(result, s)
		}
	}
	return result
}

// MockContractRepository is a mock implementation of domain.ContractRepository
type MockContractRepository struct {
	Contracts   map[int64]*domain.Contract
	WorkRecords map[int64][]domain.WorkRecord
	Invoices    map[int64][]domain.Invoice
	GetByIDFn   func(ctx context.Context, id int64) (*domain.Contract, error)
}

// NewMockContractRepository creates a new MockContractRepository
func NewMockContractRepository() *MockContractRepository {
	return &MockContractRepository{
		Contracts:   make(map[int64]*domain.Contract),
		WorkRecords: make(map[int64][]domain.WorkRecord),
		Invoices:    make(map[int64][]domain.Invoice),
	}
}

// GetByID retrieves a contract by ID
func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if contract, ok := m.Contracts[id]; ok {
		return contract, nil
	}
	return nil, fmt.Errorf("contract %d: %w", id, domain.ErrContractNotFound)
}

// GetWorkRecords returns the work records booked against a contract
func (m *MockContractRepository) GetWorkRecords(ctx context.Context, contractID int64) ([]domain.WorkRecord, error) {
	return m.WorkRecords[contractID], nil
}

// GetInvoices returns the invoices of a contract
func (m *MockContractRepository) GetInvoices(ctx context.Context, contractID int64) ([]domain.Invoice, error) {
	return m.Invoices[contractID], nil
}

// AddContract is a helper to add a contract to the mock
func (m *MockContractRepository) AddContract(contract *domain.Contract) {
	m.Contracts[contract.ID] = contract
}

// AddWorkRecords is a helper to book work records against a contract
func (m *MockContractRepository) AddWorkRecords(contractID int64, records ...domain.WorkRecord) {
	m.WorkRecords[contractID] = append(m.WorkRecords[contractID], records...)
}

// AddInvoices is a helper to add invoices to a contract
func (m *MockContractRepository) AddInvoices(contractID int64, invoices ...domain.Invoice) {
	m.Invoices[contractID] = append(m.Invoices[contractID], invoices...)
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int64]*domain.BudgetFigures
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int64]*domain.BudgetFigures),
	}
}

// GetFigures retrieves a budget by ID
func (m *MockBudgetRepository) GetFigures(ctx context.Context, budgetID int64) (*domain.BudgetFigures, error) {
	if budget, ok := m.Budgets[budgetID]; ok {
		return budget, nil
	}
	return nil, fmt.Errorf("budget %d: %w", budgetID, domain.ErrBudgetNotFound)
}

// FindIDsByTags returns the IDs of a project's budgets carrying any of the tags,
// or all of its budgets when no tags are given
func (m *MockBudgetRepository) FindIDsByTags(ctx context.Context, projectID int64, tags []string) ([]int64, error) {
	var ids []int64
	for id, budget := range m.Budgets {
		if budget.ProjectID != projectID {
			continue
		}
		if len(tags) == 0 || slices.ContainsFunc(budget.Tags, func(tag string) bool { return slices.Contains(tags, tag) }) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// AddBudget is a helper to add a budget to the mock
func (m *MockBudgetRepository) AddBudget(budget *domain.BudgetFigures) {
	m.Budgets[budget.ID] = budget
}

// MockReportArchive is an in-memory domain.ReportArchive
type MockReportArchive struct {
	mu      sync.Mutex
	Objects map[string][]byte
	StoreFn func(ctx context.Context, key string, data []byte) (string, error)
}

// NewMockReportArchive creates a new MockReportArchive
func NewMockReportArchive() *MockReportArchive {
	return &MockReportArchive{
		Objects: make(map[string][]byte),
	}
}

// Store keeps the snapshot in memory and returns its key
func (m *MockReportArchive) Store(ctx context.Context, key string, data []byte) (string, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = slices.Clone(data)
	return key, nil
}
