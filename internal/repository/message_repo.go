package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.product_id, m.message, m.is_read,
	       s.username, r.username, p.title, m.created_at, m.updated_at
	FROM messages m
	LEFT JOIN users s ON m.sender_id = s.id
	LEFT JOIN users r ON m.receiver_id = r.id
	LEFT JOIN products p ON m.product_id = p.id`

func scanMessage(row pgx.Row) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ProductID, &m.Message, &m.IsRead,
		&m.SenderName, &m.ReceiverName, &m.ProductTitle, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MessageRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		messageSelect+` WHERE m.product_id = $1 ORDER BY m.created_at ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) Create(ctx context.Context, senderID, receiverID, productID int64, body string) (model.Message, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, product_id, message, is_read, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		 RETURNING id`,
		senderID, receiverID, productID, body).Scan(&id)
	if err != nil {
		return model.Message{}, fmt.Errorf("create message: %w", err)
	}

	m, err := scanMessage(r.pool.QueryRow(ctx, messageSelect+` WHERE m.id = $1`, id))
	if err != nil {
		return model.Message{}, fmt.Errorf("load created message: %w", err)
	}
	return m, nil
}

// MarkRead flips is_read for a message addressed to receiverID. A message
// that is missing or addressed to someone else is NOT_FOUND either way.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID, receiverID int64) (model.Message, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`UPDATE messages SET is_read = TRUE, updated_at = NOW()
		 WHERE id = $1 AND receiver_id = $2
		 RETURNING id`, messageID, receiverID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Message{}, apierror.New("NOT_FOUND", "message not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("mark message read: %w", err)
	}

	m, err := scanMessage(r.pool.QueryRow(ctx, messageSelect+` WHERE m.id = $1`, id))
	if err != nil {
		return model.Message{}, fmt.Errorf("load message: %w", err)
	}
	return m, nil
}
