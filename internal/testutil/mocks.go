package testutil

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockOwnerRepository is a mock implementation of domain.OwnerRepository
type MockOwnerRepository struct {
	Owners   map[string]*domain.Owner
	ByID     map[uuid.UUID]*domain.Owner
	CreateFn func(auth0ID, email string, name *string) (*domain.Owner, error)
	ListFn   func() ([]*domain.Owner, error)
}

// NewMockOwnerRepository creates a new MockOwnerRepository
func NewMockOwnerRepository() *MockOwnerRepository {
	return &MockOwnerRepository{
		Owners: make(map[string]*domain.Owner),
		ByID:   make(map[uuid.UUID]*domain.Owner),
	}
}

// GetByID retrieves an owner by ID
func (m *MockOwnerRepository) GetByID(id uuid.UUID) (*domain.Owner, error) {
	if owner, ok := m.ByID[id]; ok {
		return owner, nil
	}
	return nil, domain.ErrOwnerNotFound
}

// GetByAuth0ID retrieves an owner by Auth0 ID
func (m *MockOwnerRepository) GetByAuth0ID(auth0ID string) (*domain.Owner, error) {
	if owner, ok := m.Owners[auth0ID]; ok {
		return owner, nil
	}
	return nil, domain.ErrOwnerNotFound
}

// CreateOrGetByAuth0ID creates or retrieves an owner by Auth0 ID
func (m *MockOwnerRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.Owner, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name)
	}
	if owner, ok := m.Owners[auth0ID]; ok {
		return owner, nil
	}
	owner := &domain.Owner{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.AddOwner(owner)
	return owner, nil
}

// ListAll returns every owner ordered by creation time
func (m *MockOwnerRepository) ListAll() ([]*domain.Owner, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	owners := make([]*domain.Owner, 0, len(m.ByID))
	for _, o := range m.ByID {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].CreatedAt.Before(owners[j].CreatedAt) })
	return owners, nil
}

// AddOwner adds an owner to the mock repository (helper for tests)
func (m *MockOwnerRepository) AddOwner(owner *domain.Owner) {
	m.Owners[owner.Auth0ID] = owner
	m.ByID[owner.ID] = owner
}

// NewOwner registers and returns a fresh owner (helper for tests)
func (m *MockOwnerRepository) NewOwner() *domain.Owner {
	id := uuid.New()
	owner := &domain.Owner{
		ID:        id,
		Auth0ID:   "auth0|" + id.String(),
		Email:     id.String() + "@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.AddOwner(owner)
	return owner
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository
type MockLedgerRepository struct {
	Entries           []*domain.LedgerEntry
	NextID            int64
	CreateFn          func(entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	ListByDateRangeFn func(ownerID uuid.UUID, kind domain.EntryKind, startDate, endDate time.Time) ([]*domain.LedgerEntry, error)
	ListByOwnerFn     func(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.LedgerEntry, error)
	DeleteFn          func(ownerID uuid.UUID, id int64) error
}

// NewMockLedgerRepository creates a new MockLedgerRepository
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{NextID: 1}
}

// Create stores a new entry
func (m *MockLedgerRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.CreateFn != nil {
		return m.CreateFn(entry)
	}
	entry.ID = m.NextID
	m.NextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.Entries = append(m.Entries, entry)
	return entry, nil
}

// GetByID retrieves an entry owned by ownerID
func (m *MockLedgerRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.LedgerEntry, error) {
	for _, e := range m.Entries {
		if e.ID == id && e.OwnerID == ownerID {
			return e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

// Update replaces an existing entry
func (m *MockLedgerRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	for i, e := range m.Entries {
		if e.ID == entry.ID && e.OwnerID == entry.OwnerID {
			entry.CreatedAt = e.CreatedAt
			entry.UpdatedAt = time.Now()
			m.Entries[i] = entry
			return entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

// Delete removes an entry
func (m *MockLedgerRepository) Delete(ownerID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ownerID, id)
	}
	for i, e := range m.Entries {
		if e.ID == id && e.OwnerID == ownerID {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// ListByOwner returns the owner's entries matching filters, newest date first
func (m *MockLedgerRepository) ListByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.LedgerEntry, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ownerID, filters)
	}
	result := []*domain.LedgerEntry{}
	for _, e := range m.Entries {
		if e.OwnerID != ownerID {
			continue
		}
		if filters != nil {
			if filters.Kind != nil && e.Kind != *filters.Kind {
				continue
			}
			if filters.StartDate != nil && e.EntryDate.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && e.EntryDate.After(*filters.EndDate) {
				continue
			}
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].EntryDate.After(result[j].EntryDate) })
	return result, nil
}

// ListByDateRange returns entries of one kind dated within [startDate, endDate]
func (m *MockLedgerRepository) ListByDateRange(ownerID uuid.UUID, kind domain.EntryKind, startDate, endDate time.Time) ([]*domain.LedgerEntry, error) {
	if m.ListByDateRangeFn != nil {
		return m.ListByDateRangeFn(ownerID, kind, startDate, endDate)
	}
	result := []*domain.LedgerEntry{}
	for _, e := range m.Entries {
		if e.OwnerID != ownerID || e.Kind != kind {
			continue
		}
		if e.EntryDate.Before(startDate) || e.EntryDate.After(endDate) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// AddEntry appends an entry without going through Create (helper for tests)
func (m *MockLedgerRepository) AddEntry(entry *domain.LedgerEntry) {
	if entry.ID == 0 {
		entry.ID = m.NextID
		m.NextID++
	}
	m.Entries = append(m.Entries, entry)
}

// MockRecurringRepository is a mock implementation of domain.RecurringRepository
type MockRecurringRepository struct {
	Rules         []*domain.RecurringRule
	NextID        int64
	ListByOwnerFn func(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error)
}

// NewMockRecurringRepository creates a new MockRecurringRepository
func NewMockRecurringRepository() *MockRecurringRepository {
	return &MockRecurringRepository{NextID: 1}
}

// Create stores a new rule
func (m *MockRecurringRepository) Create(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	rule.ID = m.NextID
	m.NextID++
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	m.Rules = append(m.Rules, rule)
	return rule, nil
}

// GetByID retrieves a rule owned by ownerID
func (m *MockRecurringRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.RecurringRule, error) {
	for _, r := range m.Rules {
		if r.ID == id && r.OwnerID == ownerID {
			return r, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

// ListByOwner returns rules in insertion order
func (m *MockRecurringRepository) ListByOwner(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ownerID, activeOnly)
	}
	result := []*domain.RecurringRule{}
	for _, r := range m.Rules {
		if r.OwnerID != ownerID {
			continue
		}
		if activeOnly != nil && r.IsActive != *activeOnly {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// Update replaces an existing rule
func (m *MockRecurringRepository) Update(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	for i, r := range m.Rules {
		if r.ID == rule.ID && r.OwnerID == rule.OwnerID {
			rule.CreatedAt = r.CreatedAt
			rule.UpdatedAt = time.Now()
			m.Rules[i] = rule
			return rule, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

// Delete removes a rule
func (m *MockRecurringRepository) Delete(ownerID uuid.UUID, id int64) error {
	for i, r := range m.Rules {
		if r.ID == id && r.OwnerID == ownerID {
			m.Rules = append(m.Rules[:i], m.Rules[i+1:]...)
			return nil
		}
	}
	return domain.ErrRuleNotFound
}

// AddRule appends a rule without going through Create (helper for tests)
func (m *MockRecurringRepository) AddRule(rule *domain.RecurringRule) {
	if rule.ID == 0 {
		rule.ID = m.NextID
		m.NextID++
	}
	m.Rules = append(m.Rules, rule)
}

// MockPeriodBalanceRepository is a mock implementation of domain.PeriodBalanceRepository.
// It is safe for concurrent use so locker tests can hammer it.
type MockPeriodBalanceRepository struct {
	mu          sync.Mutex
	Balances    map[string]*domain.PeriodBalance
	NextID      int64
	UpsertCalls int
	ReadCalls   int
	UpsertFn    func(balance *domain.PeriodBalance) (*domain.PeriodBalance, error)
}

// NewMockPeriodBalanceRepository creates a new MockPeriodBalanceRepository
func NewMockPeriodBalanceRepository() *MockPeriodBalanceRepository {
	return &MockPeriodBalanceRepository{
		Balances: make(map[string]*domain.PeriodBalance),
		NextID:   1,
	}
}

func balanceKey(ownerID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s-%04d-%02d", ownerID, year, month)
}

// GetByPeriod retrieves the record for (owner, year, month)
func (m *MockPeriodBalanceRepository) GetByPeriod(ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if b, ok := m.Balances[balanceKey(ownerID, year, month)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrBalanceNotFound
}

// GetLatestBefore returns the newest record strictly before (year, month)
func (m *MockPeriodBalanceRepository) GetLatestBefore(ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	target := domain.Period{Year: year, Month: month}
	var latest *domain.PeriodBalance
	for _, b := range m.Balances {
		if b.OwnerID != ownerID || !b.Period().Before(target) {
			continue
		}
		if latest == nil || b.Period().After(latest.Period()) {
			latest = b
		}
	}
	if latest == nil {
		return nil, domain.ErrBalanceNotFound
	}
	cp := *latest
	return &cp, nil
}

// ListAfter returns records strictly after (year, month), oldest first
func (m *MockPeriodBalanceRepository) ListAfter(ownerID uuid.UUID, year, month int) ([]*domain.PeriodBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	target := domain.Period{Year: year, Month: month}
	result := []*domain.PeriodBalance{}
	for _, b := range m.Balances {
		if b.OwnerID == ownerID && b.Period().After(target) {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period().Before(result[j].Period()) })
	return result, nil
}

// ListByOwner returns all records, newest first
func (m *MockPeriodBalanceRepository) ListByOwner(ownerID uuid.UUID) ([]*domain.PeriodBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	result := []*domain.PeriodBalance{}
	for _, b := range m.Balances {
		if b.OwnerID == ownerID {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period().After(result[j].Period()) })
	return result, nil
}

// Upsert inserts or updates the record keyed by (owner, year, month)
func (m *MockPeriodBalanceRepository) Upsert(balance *domain.PeriodBalance) (*domain.PeriodBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.UpsertFn != nil {
		return m.UpsertFn(balance)
	}
	key := balanceKey(balance.OwnerID, balance.Year, balance.Month)
	now := time.Now()
	stored := *balance
	if existing, ok := m.Balances[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = m.NextID
		m.NextID++
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	m.Balances[key] = &stored
	cp := stored
	return &cp, nil
}

// AddBalance stores a record directly (helper for tests)
func (m *MockPeriodBalanceRepository) AddBalance(balance *domain.PeriodBalance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if balance.ID == 0 {
		balance.ID = m.NextID
		m.NextID++
	}
	m.Balances[balanceKey(balance.OwnerID, balance.Year, balance.Month)] = balance
}

// Calls returns the number of reads and upserts served so far
func (m *MockPeriodBalanceRepository) Calls() (reads, upserts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReadCalls, m.UpsertCalls
}

// MockNetWorthRepository is a mock implementation of domain.NetWorthRepository
type MockNetWorthRepository struct {
	Snapshots []*domain.NetWorthSnapshot
	NextID    int64
}

// NewMockNetWorthRepository creates a new MockNetWorthRepository
func NewMockNetWorthRepository() *MockNetWorthRepository {
	return &MockNetWorthRepository{NextID: 1}
}

// Create stores a new snapshot
func (m *MockNetWorthRepository) Create(snapshot *domain.NetWorthSnapshot) (*domain.NetWorthSnapshot, error) {
	snapshot.ID = m.NextID
	m.NextID++
	snapshot.CreatedAt = time.Now()
	snapshot.UpdatedAt = snapshot.CreatedAt
	m.Snapshots = append(m.Snapshots, snapshot)
	return snapshot, nil
}

// GetByID retrieves a snapshot owned by ownerID
func (m *MockNetWorthRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.NetWorthSnapshot, error) {
	for _, s := range m.Snapshots {
		if s.ID == id && s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, domain.ErrNetWorthNotFound
}

// ListByOwner returns snapshots, most recent record date first
func (m *MockNetWorthRepository) ListByOwner(ownerID uuid.UUID) ([]*domain.NetWorthSnapshot, error) {
	result := []*domain.NetWorthSnapshot{}
	for _, s := range m.Snapshots {
		if s.OwnerID == ownerID {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RecordDate.After(result[j].RecordDate) })
	return result, nil
}

// Update replaces an existing snapshot
func (m *MockNetWorthRepository) Update(snapshot *domain.NetWorthSnapshot) (*domain.NetWorthSnapshot, error) {
	for i, s := range m.Snapshots {
		if s.ID == snapshot.ID && s.OwnerID == snapshot.OwnerID {
			snapshot.CreatedAt = s.CreatedAt
			snapshot.UpdatedAt = time.Now()
			m.Snapshots[i] = snapshot
			return snapshot, nil
		}
	}
	return nil, domain.ErrNetWorthNotFound
}

// Delete removes a snapshot
func (m *MockNetWorthRepository) Delete(ownerID uuid.UUID, id int64) error {
	for i, s := range m.Snapshots {
		if s.ID == id && s.OwnerID == ownerID {
			m.Snapshots = append(m.Snapshots[:i], m.Snapshots[i+1:]...)
			return nil
		}
	}
	return domain.ErrNetWorthNotFound
}

// MockAssetRepository is a mock implementation of domain.AssetRepository
type MockAssetRepository struct {
	Assets   []*domain.Asset
	NextID   int64
	TotalsFn func(ownerID uuid.UUID) (decimal.Decimal, decimal.Decimal, error)
}

// NewMockAssetRepository creates a new MockAssetRepository
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{NextID: 1}
}

// Create stores a new asset
func (m *MockAssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	asset.ID = m.NextID
	m.NextID++
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	m.Assets = append(m.Assets, asset)
	return asset, nil
}

// GetByID retrieves an asset owned by ownerID
func (m *MockAssetRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.Asset, error) {
	for _, a := range m.Assets {
		if a.ID == id && a.OwnerID == ownerID {
			return a, nil
		}
	}
	return nil, domain.ErrAssetNotFound
}

// ListByOwner returns holdings ordered by name
func (m *MockAssetRepository) ListByOwner(ownerID uuid.UUID, isAsset *bool) ([]*domain.Asset, error) {
	result := []*domain.Asset{}
	for _, a := range m.Assets {
		if a.OwnerID != ownerID {
			continue
		}
		if isAsset != nil && a.IsAsset != *isAsset {
			continue
		}
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces an existing asset
func (m *MockAssetRepository) Update(asset *domain.Asset) (*domain.Asset, error) {
	for i, a := range m.Assets {
		if a.ID == asset.ID && a.OwnerID == asset.OwnerID {
			asset.CreatedAt = a.CreatedAt
			asset.UpdatedAt = time.Now()
			m.Assets[i] = asset
			return asset, nil
		}
	}
	return nil, domain.ErrAssetNotFound
}

// Delete removes an asset
func (m *MockAssetRepository) Delete(ownerID uuid.UUID, id int64) error {
	for i, a := range m.Assets {
		if a.ID == id && a.OwnerID == ownerID {
			m.Assets = append(m.Assets[:i], m.Assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssetNotFound
}

// Totals sums the owner's asset and liability values
func (m *MockAssetRepository) Totals(ownerID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	if m.TotalsFn != nil {
		return m.TotalsFn(ownerID)
	}
	assets, liabilities := decimal.Zero, decimal.Zero
	for _, a := range m.Assets {
		if a.OwnerID != ownerID {
			continue
		}
		if a.IsAsset {
			assets = assets.Add(a.Value)
		} else {
			liabilities = liabilities.Add(a.Value)
		}
	}
	return assets, liabilities, nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals  []*domain.Goal
	NextID int64
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{NextID: 1}
}

// Create stores a new goal
func (m *MockGoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	goal.ID = m.NextID
	m.NextID++
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals = append(m.Goals, goal)
	return goal, nil
}

// GetByID retrieves a goal owned by ownerID
func (m *MockGoalRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.Goal, error) {
	for _, g := range m.Goals {
		if g.ID == id && g.OwnerID == ownerID {
			return g, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// ListByOwner returns goals, nearest target date first
func (m *MockGoalRepository) ListByOwner(ownerID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	result := []*domain.Goal{}
	for _, g := range m.Goals {
		if g.OwnerID != ownerID {
			continue
		}
		if status != nil && g.Status != *status {
			continue
		}
		result = append(result, g)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].TargetDate.Before(result[j].TargetDate) })
	return result, nil
}

// Update replaces an existing goal
func (m *MockGoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	for i, g := range m.Goals {
		if g.ID == goal.ID && g.OwnerID == goal.OwnerID {
			goal.CreatedAt = g.CreatedAt
			goal.UpdatedAt = time.Now()
			m.Goals[i] = goal
			return goal, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// Delete removes a goal
func (m *MockGoalRepository) Delete(ownerID uuid.UUID, id int64) error {
	for i, g := range m.Goals {
		if g.ID == id && g.OwnerID == ownerID {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			return nil
		}
	}
	return domain.ErrGoalNotFound
}
