package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageRouter(svc *fakeMessageService) chi.Router {
	r := chi.NewRouter()
	handler.NewMessageHandler(testLogger(), svc).Init(r)
	return r
}

func TestMessageHandler_Send(t *testing.T) {
	body := `{"receiver_email": "bob@example.com", "content": "Is the order still on?"}`

	t.Run("delivers the message", func(t *testing.T) {
		svc := &fakeMessageService{
			SendFunc: func(_ context.Context, senderEmail, receiverEmail, content string) (entities.Message, error) {
				assert.Equal(t, "alice@example.com", senderEmail)
				assert.Equal(t, "bob@example.com", receiverEmail)
				return entities.Message{
					ID:            1,
					SenderEmail:   senderEmail,
					ReceiverEmail: receiverEmail,
					Content:       content,
					Timestamp:     time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		router := newMessageRouter(svc)

		res, resBody := doRequest(t, router, http.MethodPost, "/shop/messages/alice@example.com/send", body, false)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, resBody, "Message sent successfully")
		assert.Contains(t, resBody, `"sender_email":"alice@example.com"`)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		svc := &fakeMessageService{
			SendFunc: func(_ context.Context, senderEmail, receiverEmail, content string) (entities.Message, error) {
				return entities.Message{}, entities.ErrUserNotFound
			},
		}
		router := newMessageRouter(svc)

		res, resBody := doRequest(t, router, http.MethodPost, "/shop/messages/alice@example.com/send", body, false)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, resBody, "Receiver email not found")
	})

	t.Run("blank content rejected", func(t *testing.T) {
		router := newMessageRouter(&fakeMessageService{})

		res, resBody := doRequest(t, router, http.MethodPost, "/shop/messages/alice@example.com/send",
			`{"receiver_email": "bob@example.com", "content": "   "}`, false)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, resBody, "Missing required fields")
	})
}

func TestMessageHandler_View(t *testing.T) {
	t.Run("lists sent messages", func(t *testing.T) {
		svc := &fakeMessageService{
			ViewSentFunc: func(_ context.Context, email string) ([]entities.Message, error) {
				assert.Equal(t, "alice@example.com", email)
				return []entities.Message{{ID: 2, SenderEmail: email, ReceiverEmail: "bob@example.com", Content: "hello"}}, nil
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodGet, "/shop/messages/alice@example.com/view?type=sent", "", false)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var payload map[string][]map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		require.Len(t, payload["messages"], 1)
		assert.EqualValues(t, 2, payload["messages"][0]["message_id"])
	})

	t.Run("lists received messages", func(t *testing.T) {
		svc := &fakeMessageService{
			ViewReceivedFunc: func(_ context.Context, email string) ([]entities.Message, error) {
				return []entities.Message{{ID: 3, ReceiverEmail: email}}, nil
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodGet, "/shop/messages/alice@example.com/view?type=received", "", false)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, `"message_id":3`)
	})

	t.Run("unknown query type rejected", func(t *testing.T) {
		router := newMessageRouter(&fakeMessageService{})

		res, body := doRequest(t, router, http.MethodGet, "/shop/messages/alice@example.com/view?type=archived", "", false)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, body, "Invalid email or query type")
	})
}

func TestMessageHandler_Edit(t *testing.T) {
	t.Run("updates the content", func(t *testing.T) {
		svc := &fakeMessageService{
			EditFunc: func(_ context.Context, messageID int64, content string) (entities.Message, error) {
				assert.Equal(t, int64(2), messageID)
				assert.Equal(t, "updated text", content)
				return entities.Message{ID: messageID, Content: content}, nil
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodPut, "/shop/messages/2/edit", `{"content": "updated text"}`, false)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Message updated successfully")
		assert.Contains(t, body, `"content":"updated text"`)
	})

	t.Run("unknown message", func(t *testing.T) {
		svc := &fakeMessageService{
			EditFunc: func(_ context.Context, messageID int64, content string) (entities.Message, error) {
				return entities.Message{}, entities.ErrMessageNotFound
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodPut, "/shop/messages/99/edit", `{"content": "updated text"}`, false)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "Message not found")
	})

	t.Run("blank content rejected", func(t *testing.T) {
		router := newMessageRouter(&fakeMessageService{})

		res, body := doRequest(t, router, http.MethodPut, "/shop/messages/2/edit", `{"content": " "}`, false)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, body, "Valid message ID and new content must be provided")
	})
}

func TestMessageHandler_Delete(t *testing.T) {
	t.Run("returns the deleted message", func(t *testing.T) {
		svc := &fakeMessageService{
			DeleteFunc: func(_ context.Context, messageID int64) (entities.Message, error) {
				return entities.Message{ID: messageID, Content: "old"}, nil
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodDelete, "/shop/messages/2/delete", "", false)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Message deleted successfully")
		assert.Contains(t, body, `"deleted"`)
	})

	t.Run("unknown message", func(t *testing.T) {
		svc := &fakeMessageService{
			DeleteFunc: func(_ context.Context, messageID int64) (entities.Message, error) {
				return entities.Message{}, entities.ErrMessageNotFound
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodDelete, "/shop/messages/99/delete", "", false)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "Message not found")
	})
}

func TestMessageHandler_ActiveChats(t *testing.T) {
	t.Run("lists chat partners as a bare array", func(t *testing.T) {
		svc := &fakeMessageService{
			ActiveChatsFunc: func(_ context.Context, email string) ([]entities.Chat, error) {
				return []entities.Chat{
					{SenderEmail: "alice@example.com", ReceiverEmail: "bob@example.com"},
					{SenderEmail: "carol@example.com", ReceiverEmail: "alice@example.com"},
				}, nil
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodGet, "/shop/messages/alice@example.com/active-chats", "", false)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var chats []map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &chats))
		assert.Len(t, chats, 2)
		assert.Equal(t, "bob@example.com", chats[0]["receiver_email"])
	})

	t.Run("no conversations", func(t *testing.T) {
		svc := &fakeMessageService{
			ActiveChatsFunc: func(_ context.Context, email string) ([]entities.Chat, error) {
				return nil, entities.ErrMessageNotFound
			},
		}
		router := newMessageRouter(svc)

		res, body := doRequest(t, router, http.MethodGet, "/shop/messages/alice@example.com/active-chats", "", false)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "No active chats found")
	})
}
