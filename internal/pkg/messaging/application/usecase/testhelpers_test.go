package usecase

import (
	"context"
	"sync"
	"time"

	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// fakeRepo is an in-memory MessageRepository for use case tests.
type fakeRepo struct {
	mu           sync.Mutex
	participants map[int64]domain.Participant
	messages     []domain.Message
	nextID       int64

	saveErr   error
	unreadErr error
	markErrOn map[int64]error // messageID -> error
	markCalls []int64
}

var _ repository.MessageRepository = (*fakeRepo)(nil)

func newFakeRepo(participants ...domain.Participant) *fakeRepo {
	r := &fakeRepo{participants: make(map[int64]domain.Participant), nextID: 1}
	for _, p := range participants {
		r.participants[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Save(ctx context.Context, m domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, m)
	return &m, nil
}

func (r *fakeRepo) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) UnreadFor(ctx context.Context, recipientID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unreadErr != nil {
		return nil, r.unreadErr
	}
	var out []domain.Message
	for _, m := range r.messages {
		if m.RecipientID == recipientID && !m.Read {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkRead(ctx context.Context, messageID, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls = append(r.markCalls, messageID)
	if err := r.markErrOn[messageID]; err != nil {
		return err
	}
	for i := range r.messages {
		if r.messages[i].ID == messageID && r.messages[i].RecipientID == recipientID {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *fakeRepo) GetParticipant(ctx context.Context, id int64) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, repository.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *fakeRepo) ListAdmins(ctx context.Context) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.Role == domain.RoleAdmin {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) SearchUsers(ctx context.Context, search string) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.Role == domain.RoleUser {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeDeliverer records fan-out calls.
type fakeDeliverer struct {
	delivered int // returned recipient-connection count
	calls     []domain.Message
	origins   []string
}

func (d *fakeDeliverer) DeliverMessage(msg domain.Message, originConnectionID string) (int, error) {
	d.calls = append(d.calls, msg)
	d.origins = append(d.origins, originConnectionID)
	return d.delivered, nil
}

// fakeOffline records offline notifications.
type fakeOffline struct {
	recipients []int64
}

func (o *fakeOffline) NotifyOffline(ctx context.Context, recipientID int64) error {
	o.recipients = append(o.recipients, recipientID)
	return nil
}

// fakeCache is an in-memory cport.Cache (TTL ignored).
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

var _ cport.Cache = (*fakeCache)(nil)

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cport.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                   { return nil }

var (
	testUser  = domain.Participant{ID: 7, Name: "Moussa", Role: domain.RoleUser}
	testAdmin = domain.Participant{ID: 3, Name: "Awa", Role: domain.RoleAdmin}
)
