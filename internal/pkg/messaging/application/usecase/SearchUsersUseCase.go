package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// SearchUsersUseCase serves the admin-side contact list, optionally filtered
// by name or email.
type SearchUsersUseCase struct {
	repo repository.MessageRepository
}

func NewSearchUsersUseCase(repo repository.MessageRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{repo: repo}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, search string) ([]domain.Participant, error) {
	users, err := uc.repo.SearchUsers(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if users == nil {
		users = []domain.Participant{}
	}
	return users, nil
}
