package usecase

import (
	"context"
	"fmt"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// ListAdminsUseCase serves the user-side contact list.
type ListAdminsUseCase struct {
	repo repository.MessageRepository
}

func NewListAdminsUseCase(repo repository.MessageRepository) *ListAdminsUseCase {
	return &ListAdminsUseCase{repo: repo}
}

func (uc *ListAdminsUseCase) Execute(ctx context.Context) ([]domain.Participant, error) {
	admins, err := uc.repo.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if admins == nil {
		admins = []domain.Participant{}
	}
	return admins, nil
}
