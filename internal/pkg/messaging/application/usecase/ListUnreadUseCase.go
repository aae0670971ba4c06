package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// unreadCacheTTL tracks the storefront's badge poll interval so a cached
// answer is never staler than one poll.
const unreadCacheTTL = 2 * time.Second

// UnreadCacheKey is the Redis key holding a participant's serialized unread
// list. Shared with the background refresh task.
func UnreadCacheKey(participantID int64) string {
	return fmt.Sprintf("messaging:unread:%d", participantID)
}

// ListUnreadUseCase is the read side of the unread tracker: the unread index
// is always recomputed from the store, with a short-TTL cache in front of it
// to absorb the frontend's fixed-interval poll. The cache is optional; with
// no cache every call hits the store.
type ListUnreadUseCase struct {
	repo   repository.MessageRepository
	cache  cport.Cache
	logger *zap.Logger
}

func NewListUnreadUseCase(repo repository.MessageRepository, cache cport.Cache, logger *zap.Logger) *ListUnreadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListUnreadUseCase{repo: repo, cache: cache, logger: logger}
}

func (uc *ListUnreadUseCase) Execute(ctx context.Context, participantID int64) ([]domain.Message, error) {
	if participantID <= 0 {
		return nil, ErrInvalidInput
	}

	if uc.cache != nil {
		raw, err := uc.cache.Get(ctx, UnreadCacheKey(participantID))
		if err == nil {
			var msgs []domain.Message
			if jsonErr := json.Unmarshal([]byte(raw), &msgs); jsonErr == nil {
				return msgs, nil
			}
		} else if !errors.Is(err, cport.ErrMiss) {
			uc.logger.Warn("unread cache read failed",
				zap.Int64("participant_id", participantID), zap.Error(err))
		}
	}

	return uc.Refresh(ctx, participantID)
}

// Refresh recomputes the unread list from the store and rewrites the cache
// entry. Also used by the background reconciliation sweep.
func (uc *ListUnreadUseCase) Refresh(ctx context.Context, participantID int64) ([]domain.Message, error) {
	msgs, err := uc.repo.UnreadFor(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(msgs); err == nil {
			if err := uc.cache.Set(ctx, UnreadCacheKey(participantID), string(raw), unreadCacheTTL); err != nil {
				uc.logger.Warn("unread cache write failed",
					zap.Int64("participant_id", participantID), zap.Error(err))
			}
		}
	}
	return msgs, nil
}

// CountBySender folds an unread list into the senderId -> count badge index.
func CountBySender(msgs []domain.Message) map[int64]int {
	counts := make(map[int64]int, len(msgs))
	for _, m := range msgs {
		counts[m.SenderID]++
	}
	return counts
}
