package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrderService coordinates order workflows.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// OrderCreateInput describes the webhook creation payload.
type OrderCreateInput struct {
	CompanyID        string
	CustomerPhone    string
	CustomerName     string
	CustomerAddress  string
	CustomerDistrict string
	Items            []domain.OrderItem
	Subtotal         float64
	DeliveryFee      float64
	Discount         float64
	Total            float64
	PaymentMethod    string
	ChangeFor        *float64
	Notes            string
}

// OrderListFilter describes panel listing filters.
type OrderListFilter struct {
	Status      *domain.OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// List returns orders visible under the request scope.
func (s *OrderService) List(ctx context.Context, principal *auth.Principal, explicitCompanyID string, filter OrderListFilter) ([]domain.Order, error) {
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	return s.orders.ListWithFilter(ctx, repository.OrderFilter{
		CompanyID:   companyID,
		Status:      filter.Status,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
	})
}

// Get loads one order plus its status history.
func (s *OrderService) Get(ctx context.Context, principal *auth.Principal, id string) (*domain.Order, []domain.OrderHistory, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := auth.AuthorizeRead(principal, order.CompanyID); err != nil {
		return nil, nil, err
	}
	history, err := s.orders.ListHistory(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, history, nil
}

// Create records an incoming order, writes the initial history row and
// publishes the creation event. The steps are not one transaction; a
// failure between them leaves the completed steps in place.
func (s *OrderService) Create(ctx context.Context, principal *auth.Principal, input OrderCreateInput) (*domain.Order, error) {
	if input.CustomerPhone == "" || input.Total <= 0 {
		return nil, apperrors.NewValidationError("customer_phone and total are required", nil)
	}

	scope := auth.ResolveScope(principal, input.CompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeCreate(principal, companyID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		CompanyID:        companyID,
		CustomerPhone:    input.CustomerPhone,
		CustomerName:     input.CustomerName,
		CustomerAddress:  input.CustomerAddress,
		CustomerDistrict: input.CustomerDistrict,
		Items:            input.Items,
		Subtotal:         input.Subtotal,
		DeliveryFee:      input.DeliveryFee,
		Discount:         input.Discount,
		Total:            input.Total,
		PaymentMethod:    input.PaymentMethod,
		ChangeFor:        input.ChangeFor,
		Notes:            input.Notes,
		Status:           domain.OrderStatusConfirmed,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.orders.AddHistory(ctx, &domain.OrderHistory{
		OrderID:   order.ID,
		NewStatus: order.Status,
	}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventOrderCreated,
		CompanyID: order.CompanyID,
		ActorID:   actorID(principal),
		Payload: events.OrderCreatedPayload{
			OrderID:       order.ID,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			Total:         order.Total,
		},
	})
	return order, nil
}

// UpdateStatus transitions an order, recording the old status in history.
func (s *OrderService) UpdateStatus(ctx context.Context, principal *auth.Principal, id string, newStatus domain.OrderStatus, note string) (*domain.Order, error) {
	if newStatus == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeMutate(principal, order.CompanyID); err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	if err := s.orders.AddHistory(ctx, &domain.OrderHistory{
		OrderID:   order.ID,
		OldStatus: &oldStatus,
		NewStatus: newStatus,
		Note:      note,
		UserID:    actorID(principal),
	}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventOrderStatusChanged,
		CompanyID: order.CompanyID,
		ActorID:   actorID(principal),
		Payload: events.OrderStatusChangedPayload{
			OrderID:   order.ID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Note:      note,
		},
	})
	return order, nil
}

// MarkPrinted flags the order as sent to the kitchen printer.
func (s *OrderService) MarkPrinted(ctx context.Context, principal *auth.Principal, id string) error {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeMutate(principal, order.CompanyID); err != nil {
		return err
	}
	return s.orders.MarkPrinted(ctx, order.ID)
}

func (s *OrderService) loadOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", nil)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorID(p *auth.Principal) *string {
	if p == nil {
		return nil
	}
	id := p.ID
	return &id
}
