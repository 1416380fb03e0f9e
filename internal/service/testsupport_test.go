package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

func adminPrincipal() *auth.Principal {
	return &auth.Principal{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
}

func managerPrincipal(companyID string) *auth.Principal {
	return &auth.Principal{ID: "manager-" + companyID, Name: "Manager", Email: "mgr@example.com", Role: domain.RoleManager, CompanyID: &companyID}
}

type mockProductRepo struct {
	byID    map[string]*domain.Product
	nextID  int
	deleted []string
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	repo := &mockProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.byID[p.ID] = p
	}
	return repo
}

func (m *mockProductRepo) Create(_ context.Context, product *domain.Product) error {
	m.nextID++
	product.ID = fmt.Sprintf("product-%d", m.nextID)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.byID[product.ID] = product
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := m.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (m *mockProductRepo) ListByCompany(_ context.Context, companyID string) ([]domain.Product, error) {
	var result []domain.Product
	for _, p := range m.byID {
		if p.CompanyID == companyID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) ToggleAvailability(_ context.Context, id string) (*domain.Product, error) {
	product, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	product.Available = !product.Available
	clone := *product
	return &clone, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var count int64
	for _, p := range m.byID {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

var _ repository.ProductRepository = (*mockProductRepo)(nil)

type mockUserRepo struct {
	users       []domain.User
	lastLoginID string
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			clone := m.users[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].Email == email && m.users[i].Active {
			clone := m.users[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id string) error {
	m.lastLoginID = id
	return nil
}

func (m *mockUserRepo) ListNotifiable(_ context.Context, companyID string) ([]domain.User, error) {
	var result []domain.User
	for _, u := range m.users {
		if !u.Active {
			continue
		}
		if u.Role == domain.RoleAdmin || (u.CompanyID != nil && *u.CompanyID == companyID) {
			result = append(result, u)
		}
	}
	return result, nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockOrderRepo struct {
	byID    map[string]*domain.Order
	history []domain.OrderHistory
	nextID  int
	printed []string
}

func newMockOrderRepo(orders ...*domain.Order) *mockOrderRepo {
	repo := &mockOrderRepo{byID: make(map[string]*domain.Order)}
	for _, o := range orders {
		repo.byID[o.ID] = o
	}
	return repo
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.byID[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepo) ListWithFilter(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	var result []domain.Order
	for _, o := range m.byID {
		if o.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	order, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepo) MarkPrinted(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	m.printed = append(m.printed, id)
	return nil
}

func (m *mockOrderRepo) AddHistory(_ context.Context, entry *domain.OrderHistory) error {
	entry.ID = fmt.Sprintf("history-%d", len(m.history)+1)
	m.history = append(m.history, *entry)
	return nil
}

func (m *mockOrderRepo) ListHistory(_ context.Context, orderID string) ([]domain.OrderHistory, error) {
	var result []domain.OrderHistory
	for _, h := range m.history {
		if h.OrderID == orderID {
			result = append(result, h)
		}
	}
	return result, nil
}

var _ repository.OrderRepository = (*mockOrderRepo)(nil)

type mockAlertRepo struct {
	alerts []domain.Alert
	nextID int
}

func (m *mockAlertRepo) Create(_ context.Context, alert *domain.Alert) error {
	m.nextID++
	alert.ID = fmt.Sprintf("alert-%d", m.nextID)
	alert.CreatedAt = time.Now()
	m.alerts = append(m.alerts, *alert)
	return nil
}

func (m *mockAlertRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.Alert, error) {
	var result []domain.Alert
	for _, a := range m.alerts {
		if a.UserID == userID {
			result = append(result, a)
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockAlertRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, a := range m.alerts {
		if a.UserID == userID && !a.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockAlertRepo) MarkRead(_ context.Context, id, userID string) error {
	for i := range m.alerts {
		if m.alerts[i].ID == id && m.alerts[i].UserID == userID {
			m.alerts[i].Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

var _ repository.AlertRepository = (*mockAlertRepo)(nil)

type fakeUnreadCache struct {
	mu          sync.Mutex
	values      map[string]int64
	hits        int
	sets        int
	invalidated []string
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{values: make(map[string]int64)}
}

func (f *fakeUnreadCache) GetUnread(_ context.Context, userID string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.values[userID]
	if ok {
		f.hits++
	}
	return count, ok, nil
}

func (f *fakeUnreadCache) SetUnread(_ context.Context, userID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[userID] = count
	f.sets++
	return nil
}

func (f *fakeUnreadCache) Invalidate(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, userID)
	f.invalidated = append(f.invalidated, userID)
	return nil
}

var _ UnreadCache = (*fakeUnreadCache)(nil)

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

var _ events.Dispatcher = (*recordingDispatcher)(nil)
