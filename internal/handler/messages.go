package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/pkg/utils"
)

type MessageService interface {
	Send(ctx context.Context, senderEmail, receiverEmail, content string) (entities.Message, error)
	ViewSent(ctx context.Context, email string) ([]entities.Message, error)
	ViewReceived(ctx context.Context, email string) ([]entities.Message, error)
	Edit(ctx context.Context, messageID int64, content string) (entities.Message, error)
	Delete(ctx context.Context, messageID int64) (entities.Message, error)
	ActiveChats(ctx context.Context, email string) ([]entities.Chat, error)
}

type MessageHandler struct {
	logger *slog.Logger
	svc    MessageService
}

func NewMessageHandler(logger *slog.Logger, svc MessageService) *MessageHandler {
	return &MessageHandler{
		logger: logger.With(slog.String("handler", "messages")),
		svc:    svc,
	}
}

func (h *MessageHandler) Init(r chi.Router) {
	r.Post("/shop/messages/{id}/send", h.Send)
	r.Get("/shop/messages/{id}/view", h.View)
	r.Put("/shop/messages/{id}/edit", h.Edit)
	r.Delete("/shop/messages/{id}/delete", h.Delete)
	r.Get("/shop/messages/{id}/active-chats", h.ActiveChats)
}

// Send delivers a message from the sender in the path to another user.
// @Summary      Send a message
// @Tags         messages
// @Param        id       path  string              true  "Sender email"
// @Param        request  body  SendMessageRequest  true  "Message payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse  "Receiver not found"
// @Router       /shop/messages/{id}/send [post]
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	senderEmail := chi.URLParam(r, "id")

	var req SendMessageRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if senderEmail == "" || strings.TrimSpace(req.Content) == "" || req.ReceiverEmail == "" {
		utils.WriteError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	sent, err := h.svc.Send(ctx, senderEmail, req.ReceiverEmail, req.Content)
	if errors.Is(err, entities.ErrUserNotFound) {
		utils.WriteError(w, "Receiver email not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to send message", slog.Any("error", err))
		utils.WriteError(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": "Message sent successfully",
		"sent":    MessageEntityToJSON(sent),
	}, http.StatusOK)
}

// View lists a user's sent or received messages, newest first.
// @Summary      View messages
// @Tags         messages
// @Param        id    path   string  true  "User email"
// @Param        type  query  string  true  "sent or received"
// @Success      200  {object}  map[string][]Message
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /shop/messages/{id}/view [get]
func (h *MessageHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "id")
	kind := r.URL.Query().Get("type")

	if email == "" || (kind != "sent" && kind != "received") {
		utils.WriteError(w, "Invalid email or query type", http.StatusBadRequest)
		return
	}

	var (
		messages []entities.Message
		err      error
	)
	if kind == "sent" {
		messages, err = h.svc.ViewSent(ctx, email)
	} else {
		messages, err = h.svc.ViewReceived(ctx, email)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list messages", slog.Any("error", err), slog.String("email", email))
		utils.WriteError(w, "Failed to retrieve messages", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string][]Message{"messages": MessagesToJSON(messages)}, http.StatusOK)
}

// Edit replaces the content of a message and refreshes its timestamp.
// @Summary      Edit a message
// @Tags         messages
// @Param        id       path  int                 true  "Message ID"
// @Param        request  body  EditMessageRequest  true  "New content"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/messages/{id}/edit [put]
func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Valid message ID and new content must be provided", http.StatusBadRequest)
		return
	}

	var req EditMessageRequest
	if err := utils.DecodeBody(r, &req); err != nil || strings.TrimSpace(req.Content) == "" {
		utils.WriteError(w, "Valid message ID and new content must be provided", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.Edit(ctx, messageID, strings.TrimSpace(req.Content))
	if errors.Is(err, entities.ErrMessageNotFound) {
		utils.WriteError(w, "Message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to edit message", slog.Any("error", err), slog.Int64("message_id", messageID))
		utils.WriteError(w, "Failed to update message", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": "Message updated successfully",
		"updated": MessageEntityToJSON(updated),
	}, http.StatusOK)
}

// Delete removes a message.
// @Summary      Delete a message
// @Tags         messages
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/messages/{id}/delete [delete]
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID, err := pathID(r)
	if err != nil {
		utils.WriteError(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.svc.Delete(ctx, messageID)
	if errors.Is(err, entities.ErrMessageNotFound) {
		utils.WriteError(w, "Message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete message", slog.Any("error", err), slog.Int64("message_id", messageID))
		utils.WriteError(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"message": "Message deleted successfully",
		"deleted": MessageEntityToJSON(deleted),
	}, http.StatusOK)
}

// ActiveChats lists the distinct conversation partners of a user.
// @Summary      List active chats
// @Tags         messages
// @Param        id   path      string  true  "User email"
// @Success      200  {array}   Chat
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /shop/messages/{id}/active-chats [get]
func (h *MessageHandler) ActiveChats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "id")

	chats, err := h.svc.ActiveChats(ctx, email)
	if errors.Is(err, entities.ErrMessageNotFound) {
		utils.WriteError(w, "No active chats found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list chats", slog.Any("error", err), slog.String("email", email))
		utils.WriteError(w, "Failed to fetch active chats", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ChatsToJSON(chats), http.StatusOK)
}
