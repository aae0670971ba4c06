package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
	repository "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/port"
)

// PgMessageRepository implements the message store gateway on Postgres.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

var _ repository.MessageRepository = (*PgMessageRepository)(nil)

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Save(ctx context.Context, m domain.Message) (*domain.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (expediteur_id, destinataire_id, contenu, lu, date_envoi)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id, lu, date_envoi
	`, m.SenderID, m.RecipientID, m.Content).Scan(&m.ID, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgMessageRepository) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, expediteur_id, destinataire_id, contenu, lu, date_envoi
		FROM messages
		WHERE (expediteur_id = $1 AND destinataire_id = $2)
		   OR (expediteur_id = $2 AND destinataire_id = $1)
		ORDER BY date_envoi ASC, id ASC
	`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *PgMessageRepository) UnreadFor(ctx context.Context, recipientID int64) ([]domain.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, expediteur_id, destinataire_id, contenu, lu, date_envoi
		FROM messages
		WHERE destinataire_id = $1 AND lu = FALSE
		ORDER BY date_envoi ASC, id ASC
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// MarkRead is idempotent: a second call on an already-read message updates the
// same row to the same value, and an id that never existed for this recipient
// simply affects zero rows. The next unread poll reconciles either way.
func (r *PgMessageRepository) MarkRead(ctx context.Context, messageID, recipientID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMessageRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE messages SET lu = TRUE
		WHERE id = $1 AND destinataire_id = $2
	`, messageID, recipientID)
	return err
}

func (r *PgMessageRepository) GetParticipant(ctx context.Context, id int64) (*domain.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	var p domain.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id, nom, email, role, avatar
		FROM utilisateurs
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgMessageRepository) ListAdmins(ctx context.Context) ([]domain.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, nom, email, role, avatar
		FROM utilisateurs
		WHERE role = 'admin'
		ORDER BY nom ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipants(rows)
}

func (r *PgMessageRepository) SearchUsers(ctx context.Context, search string) ([]domain.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, nom, email, role, avatar
		FROM utilisateurs
		WHERE role = 'user'
		  AND ($1 = '' OR nom ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY nom ASC
	`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipants(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}

func scanParticipants(rows pgx.Rows) ([]domain.Participant, error) {
	var out []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.Avatar); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
