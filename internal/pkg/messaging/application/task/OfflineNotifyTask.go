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

// OfflineNotifyTaskType is handled when a message lands for a recipient with
// no live connection: the worker re-derives the recipient's unread index so
// the badge is warm the moment they come back, and records the notification
// for the storefront's e-mail digest.
const OfflineNotifyTaskType = "messaging:offline_notify"

type OfflineNotifyTaskPayload struct {
	RecipientID int64 `json:"recipientId"`
}

// OfflineNotifier enqueues offline-notify jobs. It satisfies
// usecase.OfflineNotifier so the delivery router stays queue-agnostic.
type OfflineNotifier struct {
	Q qport.Client
}

var _ usecase.OfflineNotifier = (*OfflineNotifier)(nil)

func (n *OfflineNotifier) NotifyOffline(ctx context.Context, recipientID int64) error {
	payload, err := json.Marshal(OfflineNotifyTaskPayload{RecipientID: recipientID})
	if err != nil {
		return err
	}
	_, err = n.Q.Enqueue(ctx, qport.Task{Type: OfflineNotifyTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "messaging", MaxRetry: 5, UniqueTTL: 30 * time.Second})
	return err
}

// RegisterOfflineNotifyTask binds the handler to the worker server.
func RegisterOfflineNotifyTask(srv qport.Server, repo repository.MessageRepository, cache cport.Cache, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	refresh := usecase.NewListUnreadUseCase(repo, cache, logger)

	srv.Register(OfflineNotifyTaskType, func(ctx context.Context, t qport.Task) error {
		var p OfflineNotifyTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload, retrying cannot help
			logger.Error("offline notify: bad payload", zap.Error(err))
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		unread, err := refresh.Refresh(ctx, p.RecipientID)
		if err != nil {
			return err
		}
		logger.Info("recipient offline, unread index warmed",
			zap.Int64("recipient_id", p.RecipientID),
			zap.Int("unread", len(unread)))
		return nil
	})
}
