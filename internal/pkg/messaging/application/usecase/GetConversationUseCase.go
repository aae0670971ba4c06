package usecase

import (
	"context"
	"fmt"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// GetConversationUseCase returns the pair's full history, oldest first. A
// conversation is not a stored entity; it is this query.
type GetConversationUseCase struct {
	repo repository.MessageRepository
}

func NewGetConversationUseCase(repo repository.MessageRepository) *GetConversationUseCase {
	return &GetConversationUseCase{repo: repo}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, participantID, counterpartID int64) ([]domain.Message, error) {
	if participantID <= 0 || counterpartID <= 0 {
		return nil, ErrInvalidInput
	}
	msgs, err := uc.repo.Conversation(ctx, participantID, counterpartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}
