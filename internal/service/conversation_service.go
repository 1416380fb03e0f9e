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

// ConversationService coordinates chat hand-over between the bot and
// human agents.
type ConversationService struct {
	conversations repository.ConversationRepository
	dispatcher    events.Dispatcher
}

// BotStatus reports whether the bot is answering for a company.
type BotStatus struct {
	BotActive bool
	CompanyID string
}

// NewConversationService constructs the service.
func NewConversationService(conversations repository.ConversationRepository, dispatcher events.Dispatcher) *ConversationService {
	return &ConversationService{conversations: conversations, dispatcher: dispatcher}
}

// ListActive returns active conversations under the request scope.
func (s *ConversationService) ListActive(ctx context.Context, principal *auth.Principal, explicitCompanyID string) ([]domain.Conversation, error) {
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	return s.conversations.ListActive(ctx, companyID)
}

// Claim puts the conversation into manual mode with the caller as agent,
// creating it when the phone has no conversation yet.
func (s *ConversationService) Claim(ctx context.Context, principal *auth.Principal, explicitCompanyID, phone string) (*domain.Conversation, error) {
	if phone == "" {
		return nil, apperrors.NewValidationError("phone is required", nil)
	}
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}

	conv, err := s.conversations.Claim(ctx, companyID, phone, principal.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		conv, err = s.conversations.CreateClaimed(ctx, companyID, phone, principal.ID)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventConversationClaimed,
		CompanyID: companyID,
		ActorID:   actorID(principal),
		Payload: events.ConversationClaimedPayload{
			CustomerPhone: phone,
			AgentID:       principal.ID,
		},
	})
	return conv, nil
}

// Release hands the conversation back to the bot.
func (s *ConversationService) Release(ctx context.Context, principal *auth.Principal, explicitCompanyID, phone string) (*domain.Conversation, error) {
	if phone == "" {
		return nil, apperrors.NewValidationError("phone is required", nil)
	}
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}

	conv, err := s.conversations.Release(ctx, companyID, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("conversation", nil)
		}
		return nil, err
	}
	return conv, nil
}

// GetBotStatus reports the bot switch for the scope's company. There is no
// per-company kill switch in storage yet, so it is always on.
func (s *ConversationService) GetBotStatus(ctx context.Context, principal *auth.Principal, explicitCompanyID string) (*BotStatus, error) {
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	return &BotStatus{BotActive: true, CompanyID: companyID}, nil
}

func (s *ConversationService) publishEvent(ctx context.Context, event events.Event) {
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
