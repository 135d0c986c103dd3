package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/notuna/order-service/internal/entities"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, m entities.Message) (entities.Message, error)
	ListSentMessages(ctx context.Context, senderEmail string) ([]entities.Message, error)
	ListReceivedMessages(ctx context.Context, receiverEmail string) ([]entities.Message, error)
	UpdateMessage(ctx context.Context, messageID int64, content string, ts time.Time) (entities.Message, error)
	DeleteMessage(ctx context.Context, messageID int64) (entities.Message, error)
	ListChats(ctx context.Context, email string) ([]entities.Chat, error)
}

// UserFinder is the slice of the user store messaging needs.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
}

type messageService struct {
	logger *slog.Logger
	repo   MessageRepo
	users  UserFinder
}

func NewMessageService(logger *slog.Logger, repo MessageRepo, users UserFinder) *messageService {
	return &messageService{
		logger: logger.With(slog.String("service", "message")),
		repo:   repo,
		users:  users,
	}
}

// Send delivers a message to an existing user.
func (s *messageService) Send(ctx context.Context, senderEmail, receiverEmail, content string) (entities.Message, error) {
	if _, err := s.users.GetUserByEmail(ctx, receiverEmail); err != nil {
		return entities.Message{}, err
	}

	return s.repo.CreateMessage(ctx, entities.Message{
		SenderEmail:   senderEmail,
		ReceiverEmail: receiverEmail,
		Content:       content,
		Timestamp:     time.Now().UTC(),
	})
}

func (s *messageService) ViewSent(ctx context.Context, email string) ([]entities.Message, error) {
	return s.repo.ListSentMessages(ctx, email)
}

func (s *messageService) ViewReceived(ctx context.Context, email string) ([]entities.Message, error) {
	return s.repo.ListReceivedMessages(ctx, email)
}

// Edit replaces the content and refreshes the timestamp.
func (s *messageService) Edit(ctx context.Context, messageID int64, content string) (entities.Message, error) {
	return s.repo.UpdateMessage(ctx, messageID, content, time.Now().UTC())
}

func (s *messageService) Delete(ctx context.Context, messageID int64) (entities.Message, error) {
	return s.repo.DeleteMessage(ctx, messageID)
}

// ActiveChats lists the distinct counterparties a user has exchanged messages
// with. No chats at all is reported as not-found.
func (s *messageService) ActiveChats(ctx context.Context, email string) ([]entities.Chat, error) {
	chats, err := s.repo.ListChats(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, entities.ErrMessageNotFound
	}
	return chats, nil
}
