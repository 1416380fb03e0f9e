package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// UnreadCache caches per-user unread counts. Backed by Redis in
// production; tests substitute an in-memory fake.
type UnreadCache interface {
	GetUnread(ctx context.Context, userID string) (int64, bool, error)
	SetUnread(ctx context.Context, userID string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

// AlertService coordinates panel notifications. Alerts are addressed to
// individual users; broadcasts fan out to a company's active users plus
// all admins.
type AlertService struct {
	alerts repository.AlertRepository
	users  repository.UserRepository
	cache  UnreadCache
}

// BroadcastInput describes an alert fan-out request.
type BroadcastInput struct {
	CompanyID string
	Type      domain.AlertType
	Title     string
	Message   string
	Link      string
}

// NewAlertService constructs the service.
func NewAlertService(alerts repository.AlertRepository, users repository.UserRepository, cache UnreadCache) *AlertService {
	return &AlertService{alerts: alerts, users: users, cache: cache}
}

// ListForUser returns the caller's latest alerts.
func (s *AlertService) ListForUser(ctx context.Context, principal *auth.Principal, limit int) ([]domain.Alert, error) {
	return s.alerts.ListByUser(ctx, principal.ID, limit)
}

// CountUnread returns the caller's unread count, serving from cache when
// possible.
func (s *AlertService) CountUnread(ctx context.Context, principal *auth.Principal) (int64, error) {
	if s.cache != nil {
		if count, ok, err := s.cache.GetUnread(ctx, principal.ID); err == nil && ok {
			return count, nil
		}
	}
	count, err := s.alerts.CountUnread(ctx, principal.ID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.SetUnread(ctx, principal.ID, count)
	}
	return count, nil
}

// MarkRead flags one of the caller's alerts as read.
func (s *AlertService) MarkRead(ctx context.Context, principal *auth.Principal, id string) error {
	if err := s.alerts.MarkRead(ctx, id, principal.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("alert", nil)
		}
		return err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, principal.ID)
	}
	return nil
}

// Broadcast creates one alert per notifiable user of the target company.
// Inserts are per-statement; a failure midway leaves earlier alerts in
// place.
func (s *AlertService) Broadcast(ctx context.Context, principal *auth.Principal, input BroadcastInput) (int, error) {
	if input.CompanyID == "" || input.Title == "" {
		return 0, apperrors.NewValidationError("company_id and title are required", nil)
	}
	if err := auth.AuthorizeCreate(principal, input.CompanyID); err != nil {
		return 0, err
	}
	return s.broadcast(ctx, input)
}

// BroadcastSystem fans out without a principal, for event subscribers
// reacting to trusted internal events.
func (s *AlertService) BroadcastSystem(ctx context.Context, input BroadcastInput) (int, error) {
	if input.CompanyID == "" || input.Title == "" {
		return 0, apperrors.NewValidationError("company_id and title are required", nil)
	}
	return s.broadcast(ctx, input)
}

func (s *AlertService) broadcast(ctx context.Context, input BroadcastInput) (int, error) {
	recipients, err := s.users.ListNotifiable(ctx, input.CompanyID)
	if err != nil {
		return 0, err
	}
	for _, user := range recipients {
		alert := &domain.Alert{
			CompanyID: input.CompanyID,
			UserID:    user.ID,
			Type:      input.Type,
			Title:     input.Title,
			Message:   input.Message,
			Link:      input.Link,
		}
		if err := s.alerts.Create(ctx, alert); err != nil {
			return 0, err
		}
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, user.ID)
		}
	}
	return len(recipients), nil
}
