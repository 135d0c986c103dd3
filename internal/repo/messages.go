package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notuna/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var messageColumns = []string{"message_id", "sender_email", "receiver_email", "content", "timestamp"}

func (r *postgresRepo) CreateMessage(ctx context.Context, m entities.Message) (entities.Message, error) {
	query, args := r.qb.Insert("messages").
		Columns("sender_email", "receiver_email", "content", "timestamp").
		Values(m.SenderEmail, m.ReceiverEmail, m.Content, m.Timestamp).
		Suffix("RETURNING " + strings.Join(messageColumns, ", ")).
		MustSql()

	var row Message
	if err := r.getContext(ctx, &row, query, args...); err != nil {
		return entities.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return MessageToEntity(row), nil
}

func (r *postgresRepo) ListSentMessages(ctx context.Context, senderEmail string) ([]entities.Message, error) {
	query, args := r.qb.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"sender_email": senderEmail}).
		OrderBy("timestamp DESC").
		MustSql()

	return r.selectMessages(ctx, query, args)
}

func (r *postgresRepo) ListReceivedMessages(ctx context.Context, receiverEmail string) ([]entities.Message, error) {
	query, args := r.qb.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"receiver_email": receiverEmail}).
		OrderBy("timestamp DESC").
		MustSql()

	return r.selectMessages(ctx, query, args)
}

// ListChats returns the distinct sender/receiver pairs a user appears in,
// on either side.
func (r *postgresRepo) ListChats(ctx context.Context, email string) ([]entities.Chat, error) {
	query, args := r.qb.Select("DISTINCT sender_email", "receiver_email").
		From("messages").
		Where(sq.Or{
			sq.Eq{"sender_email": email},
			sq.Eq{"receiver_email": email},
		}).
		MustSql()

	var rows []Message
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	chats := make([]entities.Chat, 0, len(rows))
	for _, row := range rows {
		chats = append(chats, entities.Chat{
			SenderEmail:   row.SenderEmail,
			ReceiverEmail: row.ReceiverEmail,
		})
	}
	return chats, nil
}

// UpdateMessage replaces the content and refreshes the timestamp.
func (r *postgresRepo) UpdateMessage(ctx context.Context, messageID int64, content string, ts time.Time) (entities.Message, error) {
	query, args := r.qb.Update("messages").
		Set("content", content).
		Set("timestamp", ts).
		Where(sq.Eq{"message_id": messageID}).
		Suffix("RETURNING " + strings.Join(messageColumns, ", ")).
		MustSql()

	var row Message
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Message{}, entities.ErrMessageNotFound
	}
	if err != nil {
		return entities.Message{}, fmt.Errorf("failed to update message: %w", err)
	}
	return MessageToEntity(row), nil
}

func (r *postgresRepo) DeleteMessage(ctx context.Context, messageID int64) (entities.Message, error) {
	query, args := r.qb.Delete("messages").
		Where(sq.Eq{"message_id": messageID}).
		Suffix("RETURNING " + strings.Join(messageColumns, ", ")).
		MustSql()

	var row Message
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Message{}, entities.ErrMessageNotFound
	}
	if err != nil {
		return entities.Message{}, fmt.Errorf("failed to delete message: %w", err)
	}
	return MessageToEntity(row), nil
}

func (r *postgresRepo) selectMessages(ctx context.Context, query string, args []any) ([]entities.Message, error) {
	var rows []Message
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}

	result := make([]entities.Message, 0, len(rows))
	for _, row := range rows {
		result = append(result, MessageToEntity(row))
	}
	return result, nil
}
