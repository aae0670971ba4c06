package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

func TestDeliverMessageFanOut(t *testing.T) {
	reg := NewRegistry()
	d := NewMessageDeliverer(reg)

	adminTab1 := newTestConn(3, domain.RoleAdmin)
	adminTab2 := newTestConn(3, domain.RoleAdmin)
	senderOrigin := newTestConn(7, domain.RoleUser)
	senderOther := newTestConn(7, domain.RoleUser)
	for _, c := range []*Connection{adminTab1, adminTab2, senderOrigin, senderOther} {
		reg.Register(c)
	}

	msg := domain.Message{ID: 12, SenderID: 7, RecipientID: 3, Content: "Bonjour", CreatedAt: time.Now()}
	delivered, err := d.DeliverMessage(msg, senderOrigin.ID)
	if err != nil {
		t.Fatalf("DeliverMessage: %v", err)
	}
	if delivered != 2 {
		t.Errorf("delivered to %d recipient connections, want 2", delivered)
	}

	for _, c := range []*Connection{adminTab1, adminTab2, senderOther} {
		frames := drainFrames(t, c)
		if len(frames) != 1 || frames[0].Event != EventNewMessage {
			t.Fatalf("connection %s frames = %+v, want one %s", c.ID, frames, EventNewMessage)
		}
		var got domain.Message
		if err := json.Unmarshal(frames[0].Data, &got); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		if got.ID != 12 || got.SenderID != 7 || got.RecipientID != 3 || got.Content != "Bonjour" {
			t.Errorf("pushed message = %+v", got)
		}
	}

	if frames := drainFrames(t, senderOrigin); len(frames) != 0 {
		t.Errorf("originating connection received %d frames, want 0", len(frames))
	}
}

func TestDeliverMessageUnknownOriginSkipsSenderEcho(t *testing.T) {
	reg := NewRegistry()
	d := NewMessageDeliverer(reg)

	recipient := newTestConn(3, domain.RoleAdmin)
	senderTab := newTestConn(7, domain.RoleUser)
	reg.Register(recipient)
	reg.Register(senderTab)

	msg := domain.Message{ID: 1, SenderID: 7, RecipientID: 3, Content: "salut"}
	if _, err := d.DeliverMessage(msg, ""); err != nil {
		t.Fatalf("DeliverMessage: %v", err)
	}

	if frames := drainFrames(t, recipient); len(frames) != 1 {
		t.Errorf("recipient frames = %d, want 1", len(frames))
	}
	// without a known origin the sender side gets nothing rather than a
	// possible duplicate in the sending tab
	if frames := drainFrames(t, senderTab); len(frames) != 0 {
		t.Errorf("sender frames = %d, want 0", len(frames))
	}
}

func TestDeliverMessageOfflineRecipient(t *testing.T) {
	reg := NewRegistry()
	d := NewMessageDeliverer(reg)

	msg := domain.Message{ID: 1, SenderID: 7, RecipientID: 3, Content: "salut"}
	delivered, err := d.DeliverMessage(msg, "")
	if err != nil {
		t.Fatalf("DeliverMessage: %v", err)
	}
	if delivered != 0 {
		t.Errorf("delivered = %d, want 0", delivered)
	}
}
