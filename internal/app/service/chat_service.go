package service

import (
	"context"
	"fmt"

	"courseapp/internal/common"
	"courseapp/internal/domain/model"
	"courseapp/internal/domain/repository"

	"github.com/google/uuid"
)

// Generator produces a mentor reply for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	chatRepo  repository.ChatRepository
	generator Generator
}

func NewChatService(chatRepo repository.ChatRepository, generator Generator) *ChatService {
	return &ChatService{chatRepo: chatRepo, generator: generator}
}

type SendMessageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// Send forwards the prompt to the mentor provider and records the exchange
// under the verified user's id.
func (s *ChatService) Send(ctx context.Context, userID string, req SendMessageRequest) (*model.ChatMessage, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	response, err := s.generator.GenerateContent(ctx, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mentor response: %w", err)
	}

	message := &model.ChatMessage{
		ID:       uuid.NewString(),
		UserID:   userID,
		Prompt:   req.Prompt,
		Response: response,
	}
	if err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save chat history: %w", err)
	}
	return message, nil
}

// History returns the verified user's chat history, newest first. The query
// is always scoped to the verified identity; a userId parameter naming
// someone else is rejected rather than honored.
func (s *ChatService) History(ctx context.Context, verifiedUserID, requestedUserID string) ([]model.ChatMessage, error) {
	if requestedUserID != "" && requestedUserID != verifiedUserID {
		return nil, fmt.Errorf("cannot read another user's chat history: %w", common.ErrForbidden)
	}

	messages, err := s.chatRepo.ListByUser(ctx, verifiedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}
	return messages, nil
}
