package repository

import (
	"context"
	"database/sql"
	"fmt"

	"courseapp/internal/domain/model"
)

type ChatRepository interface {
	Create(ctx context.Context, message *model.ChatMessage) error
	ListByUser(ctx context.Context, userID string) ([]model.ChatMessage, error)
}

type pgChatRepository struct {
	db *sql.DB
}

func NewPgChatRepository(db *sql.DB) ChatRepository {
	return &pgChatRepository{db: db}
}

func (r *pgChatRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, user_id, prompt, response)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, message.ID, message.UserID, message.Prompt, message.Response)
	if err != nil {
		return fmt.Errorf("pgChatRepository.Create: %w", err)
	}
	return nil
}

// ListByUser returns the user's chat history newest-first.
func (r *pgChatRepository) ListByUser(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	query := `SELECT id, user_id, prompt, response, created_at
	          FROM chat_messages WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgChatRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		m := model.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Prompt, &m.Response, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgChatRepository.ListByUser scan: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
