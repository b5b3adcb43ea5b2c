package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// MessageRepository manages in-app messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
	SetReply(ctx context.Context, id, reply string) error
	WithTx(tx pgx.Tx) MessageRepository
}

type messageRepository struct {
	db DB
}

// NewMessageRepository builds the repository.
func NewMessageRepository(db DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) WithTx(tx pgx.Tx) MessageRepository {
	return &messageRepository{db: tx}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (recipient_id, sender_id, subject, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, is_read, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		msg.RecipientID,
		msg.SenderID,
		msg.Subject,
		msg.Body,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	const query = `
        SELECT id, recipient_id, sender_id, subject, body, reply, is_read, created_at, updated_at
        FROM messages WHERE id=$1`
	var msg domain.Message
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.RecipientID,
		&msg.SenderID,
		&msg.Subject,
		&msg.Body,
		&msg.Reply,
		&msg.IsRead,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, recipient_id, sender_id, subject, body, reply, is_read, created_at, updated_at
        FROM messages WHERE recipient_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.RecipientID,
			&msg.SenderID,
			&msg.Subject,
			&msg.Body,
			&msg.Reply,
			&msg.IsRead,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE messages SET is_read=TRUE, updated_at=NOW() WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepository) SetReply(ctx context.Context, id, reply string) error {
	const query = `UPDATE messages SET reply=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, reply, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
