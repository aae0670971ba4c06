package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

func seedUnread(t *testing.T, repo *fakeRepo, sender, recipient int64, contents ...string) []domain.Message {
	t.Helper()
	var out []domain.Message
	for _, c := range contents {
		m, err := repo.Save(context.Background(), domain.Message{SenderID: sender, RecipientID: recipient, Content: c})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, *m)
	}
	return out
}

func TestListUnreadBuildsBadgeIndex(t *testing.T) {
	repo := newFakeRepo(testUser, testAdmin)
	seedUnread(t, repo, 7, 3, "un", "deux")
	seedUnread(t, repo, 9, 3, "trois")

	uc := NewListUnreadUseCase(repo, nil, nil)
	msgs, err := uc.Execute(context.Background(), 3)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	counts := CountBySender(msgs)
	if counts[7] != 2 || counts[9] != 1 {
		t.Errorf("badge index = %v, want {7:2 9:1}", counts)
	}
}

func TestListUnreadUsesCacheWithinTTL(t *testing.T) {
	repo := newFakeRepo(testUser, testAdmin)
	seedUnread(t, repo, 7, 3, "Bonjour")
	cache := newFakeCache()
	uc := NewListUnreadUseCase(repo, cache, nil)

	first, err := uc.Execute(context.Background(), 3)
	if err != nil || len(first) != 1 {
		t.Fatalf("first read = %v, %v", first, err)
	}

	// store breaks; the cached answer still serves the poll
	repo.unreadErr = errors.New("down")
	second, err := uc.Execute(context.Background(), 3)
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if len(second) != 1 || second[0].Content != "Bonjour" {
		t.Errorf("cached read = %v, want the seeded message", second)
	}
}

func TestMarkConversationReadScopedToCounterpart(t *testing.T) {
	repo := newFakeRepo(testUser, testAdmin)
	fromUser := seedUnread(t, repo, 7, 3, "un", "deux")
	fromOther := seedUnread(t, repo, 9, 3, "autre")

	cache := newFakeCache()
	cache.data[UnreadCacheKey(3)] = "[]" // stale entry to invalidate

	uc := NewMarkConversationReadUseCase(repo, cache, nil)
	marked, err := uc.Execute(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if marked != len(fromUser) {
		t.Errorf("marked = %d, want %d", marked, len(fromUser))
	}

	unread, _ := repo.UnreadFor(context.Background(), 3)
	counts := CountBySender(unread)
	if counts[7] != 0 {
		t.Errorf("unread from counterpart = %d, want 0", counts[7])
	}
	if counts[9] != len(fromOther) {
		t.Errorf("unread from other sender = %d, want %d", counts[9], len(fromOther))
	}
	if _, ok := cache.data[UnreadCacheKey(3)]; ok {
		t.Error("cache entry must be invalidated after the bulk mark")
	}
}

func TestMarkConversationReadPartialFailure(t *testing.T) {
	repo := newFakeRepo(testUser, testAdmin)
	msgs := seedUnread(t, repo, 7, 3, "un", "deux", "trois")
	repo.markErrOn = map[int64]error{msgs[1].ID: errors.New("timeout")}

	uc := NewMarkConversationReadUseCase(repo, nil, nil)
	marked, err := uc.Execute(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("partial failure must not fail the bulk call: %v", err)
	}
	if marked != 2 {
		t.Errorf("marked = %d, want 2", marked)
	}

	// the skipped message is still unread; the next refresh sees it
	unread, _ := repo.UnreadFor(context.Background(), 3)
	if len(unread) != 1 || unread[0].ID != msgs[1].ID {
		t.Errorf("unread after partial failure = %v, want the failed message only", unread)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newFakeRepo(testUser, testAdmin)
	msgs := seedUnread(t, repo, 7, 3, "Bonjour")

	uc := NewMarkReadUseCase(repo, nil)
	if err := uc.Execute(context.Background(), msgs[0].ID, 3); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := uc.Execute(context.Background(), msgs[0].ID, 3); err != nil {
		t.Fatalf("second mark must be a no-op, got %v", err)
	}

	unread, _ := repo.UnreadFor(context.Background(), 3)
	if len(unread) != 0 {
		t.Errorf("unread = %v, want empty", unread)
	}
}
