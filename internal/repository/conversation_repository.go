package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// ConversationRepository encapsulates conversation persistence.
// Conversations are keyed by customer phone within a company.
type ConversationRepository interface {
	ListActive(ctx context.Context, companyID string) ([]domain.Conversation, error)
	Claim(ctx context.Context, companyID, phone, agentID string) (*domain.Conversation, error)
	CreateClaimed(ctx context.Context, companyID, phone, agentID string) (*domain.Conversation, error)
	Release(ctx context.Context, companyID, phone string) (*domain.Conversation, error)
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

const conversationColumns = `id, company_id, customer_phone, mode, status, agent_id, claimed_at,
               last_message_at, created_at, updated_at`

func (r *conversationRepository) ListActive(ctx context.Context, companyID string) ([]domain.Conversation, error) {
	const query = `
        SELECT c.id, c.company_id, c.customer_phone, c.mode, c.status, c.agent_id, c.claimed_at,
               c.last_message_at, c.created_at, c.updated_at, u.name, COUNT(m.id)
        FROM conversations c
        LEFT JOIN users u ON c.agent_id = u.id
        LEFT JOIN messages m ON m.customer_phone = c.customer_phone AND m.company_id = c.company_id
        WHERE c.company_id=$1 AND c.status=$2
        GROUP BY c.id, u.name
        ORDER BY c.last_message_at DESC NULLS LAST`
	rows, err := r.pool.Query(ctx, query, companyID, domain.ConversationStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.ID,
			&conv.CompanyID,
			&conv.CustomerPhone,
			&conv.Mode,
			&conv.Status,
			&conv.AgentID,
			&conv.ClaimedAt,
			&conv.LastMessageAt,
			&conv.CreatedAt,
			&conv.UpdatedAt,
			&conv.AgentName,
			&conv.MessageCount,
		); err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	return result, rows.Err()
}

// Claim switches an existing conversation to manual mode. Returns
// pgx.ErrNoRows when no conversation exists for the phone yet.
func (r *conversationRepository) Claim(ctx context.Context, companyID, phone, agentID string) (*domain.Conversation, error) {
	query := `
        UPDATE conversations
        SET mode=$1, agent_id=$2, claimed_at=NOW(), updated_at=NOW()
        WHERE customer_phone=$3 AND company_id=$4
        RETURNING ` + conversationColumns
	row := r.pool.QueryRow(ctx, query, domain.ConversationModeManual, agentID, phone, companyID)
	return scanConversation(row)
}

func (r *conversationRepository) CreateClaimed(ctx context.Context, companyID, phone, agentID string) (*domain.Conversation, error) {
	query := `
        INSERT INTO conversations (company_id, customer_phone, mode, status, agent_id, claimed_at)
        VALUES ($1,$2,$3,$4,$5,NOW())
        RETURNING ` + conversationColumns
	row := r.pool.QueryRow(ctx, query, companyID, phone, domain.ConversationModeManual, domain.ConversationStatusActive, agentID)
	return scanConversation(row)
}

func (r *conversationRepository) Release(ctx context.Context, companyID, phone string) (*domain.Conversation, error) {
	query := `
        UPDATE conversations
        SET mode=$1, agent_id=NULL, updated_at=NOW()
        WHERE customer_phone=$2 AND company_id=$3
        RETURNING ` + conversationColumns
	row := r.pool.QueryRow(ctx, query, domain.ConversationModeBot, phone, companyID)
	return scanConversation(row)
}

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := row.Scan(
		&conv.ID,
		&conv.CompanyID,
		&conv.CustomerPhone,
		&conv.Mode,
		&conv.Status,
		&conv.AgentID,
		&conv.ClaimedAt,
		&conv.LastMessageAt,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &conv, nil
}
