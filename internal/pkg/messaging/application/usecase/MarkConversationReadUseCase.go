package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// MarkConversationReadUseCase marks everything the counterpart sent the
// reader as read, invoked when a conversation view opens. Best-effort: a
// partial failure leaves some messages unread until the next poll recomputes
// the index from the store.
type MarkConversationReadUseCase struct {
	repo   repository.MessageRepository
	cache  cport.Cache
	logger *zap.Logger
}

func NewMarkConversationReadUseCase(repo repository.MessageRepository, cache cport.Cache, logger *zap.Logger) *MarkConversationReadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkConversationReadUseCase{repo: repo, cache: cache, logger: logger}
}

// Execute returns how many messages were marked.
func (uc *MarkConversationReadUseCase) Execute(ctx context.Context, readerID, counterpartID int64) (int, error) {
	if readerID <= 0 || counterpartID <= 0 {
		return 0, ErrInvalidInput
	}

	unread, err := uc.repo.UnreadFor(ctx, readerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	marked := 0
	for _, m := range unread {
		if m.SenderID != counterpartID {
			continue
		}
		if err := uc.repo.MarkRead(ctx, m.ID, readerID); err != nil {
			uc.logger.Warn("mark-read failed, next poll reconciles",
				zap.Int64("message_id", m.ID), zap.Error(err))
			continue
		}
		marked++
	}

	if uc.cache != nil {
		_, _ = uc.cache.Del(ctx, UnreadCacheKey(readerID))
	}
	return marked, nil
}
