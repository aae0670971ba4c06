package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// Deliverer pushes a persisted message to live connections and reports how
// many of the recipient's connections received it.
type Deliverer interface {
	DeliverMessage(msg domain.Message, originConnectionID string) (int, error)
}

// OfflineNotifier is invoked when a message lands for a recipient with no
// live connection, so a background job can warm the unread cache and hand the
// notification off to whatever channel the storefront uses.
type OfflineNotifier interface {
	NotifyOffline(ctx context.Context, recipientID int64) error
}

// SendMessageInput carries one send request. OriginConnectionID names the
// sender's realtime connection when the send came over the socket (or the
// X-Connection-Id header on an HTTP send); it is excluded from the echo.
type SendMessageInput struct {
	SenderID           int64
	RecipientID        int64
	Content            string
	OriginConnectionID string
}

// SendMessageUseCase is the delivery router: validate, persist, then fan out.
// Persistence completes before any push, so a recipient never sees a message
// the store did not accept. Delivery itself is at-most-once; a failed send is
// reported to the sender and never retried here.
type SendMessageUseCase struct {
	repo     repository.MessageRepository
	delivery Deliverer
	offline  OfflineNotifier // optional
	logger   *zap.Logger
}

func NewSendMessageUseCase(repo repository.MessageRepository, delivery Deliverer, offline OfflineNotifier, logger *zap.Logger) *SendMessageUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendMessageUseCase{repo: repo, delivery: delivery, offline: offline, logger: logger}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*domain.Message, error) {
	msg, err := domain.NewMessage(in.SenderID, in.RecipientID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sender, err := uc.participant(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	recipient, err := uc.participant(ctx, in.RecipientID)
	if err != nil {
		return nil, err
	}
	if sender.Role == recipient.Role {
		return nil, ErrSameRole
	}

	stored, err := uc.repo.Save(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	delivered, err := uc.delivery.DeliverMessage(*stored, in.OriginConnectionID)
	if err != nil {
		// the message is durable; a push encoding failure only costs realtime
		uc.logger.Error("message fan-out failed",
			zap.Int64("message_id", stored.ID), zap.Error(err))
		return stored, nil
	}

	if delivered == 0 && uc.offline != nil {
		if err := uc.offline.NotifyOffline(ctx, stored.RecipientID); err != nil {
			uc.logger.Warn("offline notification enqueue failed",
				zap.Int64("recipient_id", stored.RecipientID), zap.Error(err))
		}
	}
	return stored, nil
}

func (uc *SendMessageUseCase) participant(ctx context.Context, id int64) (*domain.Participant, error) {
	p, err := uc.repo.GetParticipant(ctx, id)
	if errors.Is(err, repository.ErrParticipantNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownParticipant, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p, nil
}
