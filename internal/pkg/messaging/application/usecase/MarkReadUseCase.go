package usecase

import (
	"context"
	"fmt"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// MarkReadUseCase flips one message to read on behalf of its recipient.
// Idempotent: marking an already-read message is a successful no-op.
type MarkReadUseCase struct {
	repo  repository.MessageRepository
	cache cport.Cache
}

func NewMarkReadUseCase(repo repository.MessageRepository, cache cport.Cache) *MarkReadUseCase {
	return &MarkReadUseCase{repo: repo, cache: cache}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, messageID, readerID int64) error {
	if messageID <= 0 || readerID <= 0 {
		return ErrInvalidInput
	}
	if err := uc.repo.MarkRead(ctx, messageID, readerID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.cache != nil {
		_, _ = uc.cache.Del(ctx, UnreadCacheKey(readerID))
	}
	return nil
}
