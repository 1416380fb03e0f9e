package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

type mockConversationRepo struct {
	byKey   map[string]*domain.Conversation // companyID + "/" + phone
	created int
}

func newMockConversationRepo(convs ...*domain.Conversation) *mockConversationRepo {
	repo := &mockConversationRepo{byKey: make(map[string]*domain.Conversation)}
	for _, c := range convs {
		repo.byKey[c.CompanyID+"/"+c.CustomerPhone] = c
	}
	return repo
}

func (m *mockConversationRepo) ListActive(_ context.Context, companyID string) ([]domain.Conversation, error) {
	var result []domain.Conversation
	for _, c := range m.byKey {
		if c.CompanyID == companyID && c.Status == domain.ConversationStatusActive {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockConversationRepo) Claim(_ context.Context, companyID, phone, agentID string) (*domain.Conversation, error) {
	conv, ok := m.byKey[companyID+"/"+phone]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	conv.Mode = domain.ConversationModeManual
	conv.AgentID = &agentID
	conv.ClaimedAt = &now
	clone := *conv
	return &clone, nil
}

func (m *mockConversationRepo) CreateClaimed(_ context.Context, companyID, phone, agentID string) (*domain.Conversation, error) {
	now := time.Now()
	conv := &domain.Conversation{
		ID:            "conv-new",
		CompanyID:     companyID,
		CustomerPhone: phone,
		Mode:          domain.ConversationModeManual,
		Status:        domain.ConversationStatusActive,
		AgentID:       &agentID,
		ClaimedAt:     &now,
	}
	m.byKey[companyID+"/"+phone] = conv
	m.created++
	clone := *conv
	return &clone, nil
}

func (m *mockConversationRepo) Release(_ context.Context, companyID, phone string) (*domain.Conversation, error) {
	conv, ok := m.byKey[companyID+"/"+phone]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	conv.Mode = domain.ConversationModeBot
	conv.AgentID = nil
	conv.ClaimedAt = nil
	clone := *conv
	return &clone, nil
}

var _ repository.ConversationRepository = (*mockConversationRepo)(nil)

func TestConversationClaimExisting(t *testing.T) {
	repo := newMockConversationRepo(&domain.Conversation{
		ID:            "conv-1",
		CompanyID:     "company-7",
		CustomerPhone: "+5511999990000",
		Mode:          domain.ConversationModeBot,
		Status:        domain.ConversationStatusActive,
	})
	dispatcher := &recordingDispatcher{}
	svc := NewConversationService(repo, dispatcher)
	principal := managerPrincipal("company-7")

	conv, err := svc.Claim(context.Background(), principal, "", "+5511999990000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Mode != domain.ConversationModeManual {
		t.Fatalf("mode = %s, want MANUAL", conv.Mode)
	}
	if conv.AgentID == nil || *conv.AgentID != principal.ID {
		t.Fatalf("agent not set: %+v", conv)
	}
	if repo.created != 0 {
		t.Fatal("existing conversation should not be recreated")
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventConversationClaimed {
		t.Fatalf("expected claim event, got %+v", dispatcher.published)
	}
}

func TestConversationClaimCreatesWhenMissing(t *testing.T) {
	repo := newMockConversationRepo()
	svc := NewConversationService(repo, &recordingDispatcher{})

	conv, err := svc.Claim(context.Background(), managerPrincipal("company-7"), "", "+5511999990000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("expected upsert creation, created = %d", repo.created)
	}
	if conv.Mode != domain.ConversationModeManual || conv.CompanyID != "company-7" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
}

func TestConversationClaimValidation(t *testing.T) {
	svc := NewConversationService(newMockConversationRepo(), nil)

	_, err := svc.Claim(context.Background(), managerPrincipal("company-7"), "", "")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestConversationReleaseMissingIsNotFound(t *testing.T) {
	svc := NewConversationService(newMockConversationRepo(), nil)

	_, err := svc.Release(context.Background(), managerPrincipal("company-7"), "", "+5511999990000")
	assertCode(t, err, "NOT_FOUND")
}

func TestConversationReleaseReturnsToBot(t *testing.T) {
	agent := "manager-company-7"
	repo := newMockConversationRepo(&domain.Conversation{
		ID:            "conv-1",
		CompanyID:     "company-7",
		CustomerPhone: "+5511999990000",
		Mode:          domain.ConversationModeManual,
		Status:        domain.ConversationStatusActive,
		AgentID:       &agent,
	})
	svc := NewConversationService(repo, nil)

	conv, err := svc.Release(context.Background(), managerPrincipal("company-7"), "", "+5511999990000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Mode != domain.ConversationModeBot || conv.AgentID != nil {
		t.Fatalf("conversation not handed back: %+v", conv)
	}
}

func TestConversationListAdminNeedsCompany(t *testing.T) {
	svc := NewConversationService(newMockConversationRepo(), nil)

	_, err := svc.ListActive(context.Background(), adminPrincipal(), "")
	assertCode(t, err, "TENANT_REQUIRED")
}

func TestConversationScopePinsManager(t *testing.T) {
	repo := newMockConversationRepo(&domain.Conversation{
		ID:            "conv-1",
		CompanyID:     "company-9",
		CustomerPhone: "+5511999990000",
		Mode:          domain.ConversationModeBot,
		Status:        domain.ConversationStatusActive,
	})
	svc := NewConversationService(repo, &recordingDispatcher{})

	// Claiming through a foreign company id still targets the caller's own
	// company, so a new conversation is created there.
	conv, err := svc.Claim(context.Background(), managerPrincipal("company-7"), "company-9", "+5511999990000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.CompanyID != "company-7" {
		t.Fatalf("claim escaped tenant: %+v", conv)
	}
}
