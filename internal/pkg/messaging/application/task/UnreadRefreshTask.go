package task

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	qport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// UnreadRefreshTaskType re-derives one participant's unread index from the
// store into the cache. The periodic sweep keeps the push path honest: any
// inconsistency left by a partial mark-read is bounded by one sweep interval.
const UnreadRefreshTaskType = "messaging:unread_refresh"

type UnreadRefreshTaskPayload struct {
	ParticipantID int64 `json:"participantId"`
}

// EnqueueUnreadRefresh schedules a reconciliation for one participant.
func EnqueueUnreadRefresh(ctx context.Context, q qport.Client, participantID int64, in time.Duration) error {
	payload, err := json.Marshal(UnreadRefreshTaskPayload{ParticipantID: participantID})
	if err != nil {
		return err
	}
	_, err = q.Enqueue(ctx, qport.Task{Type: UnreadRefreshTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "messaging", ProcessIn: in, MaxRetry: 3})
	return err
}

// RegisterUnreadRefreshTask binds the handler to the worker server.
func RegisterUnreadRefreshTask(srv qport.Server, repo repository.MessageRepository, cache cport.Cache, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	refresh := usecase.NewListUnreadUseCase(repo, cache, logger)

	srv.Register(UnreadRefreshTaskType, func(ctx context.Context, t qport.Task) error {
		var p UnreadRefreshTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			logger.Error("unread refresh: bad payload", zap.Error(err))
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if _, err := refresh.Refresh(ctx, p.ParticipantID); err != nil {
			return err
		}
		return nil
	})
}
