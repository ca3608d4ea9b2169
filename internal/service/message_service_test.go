package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parts-market/internal/event"
	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type fakeMessageStore struct {
	messages map[int64]model.Message
	nextID   int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[int64]model.Message{}, nextID: 1}
}

func (s *fakeMessageStore) ListByProduct(_ context.Context, productID int64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) Create(_ context.Context, senderID, receiverID, productID int64, body string) (model.Message, error) {
	m := model.Message{
		ID:         s.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		ProductID:  productID,
		Message:    body,
		CreatedAt:  time.Now(),
	}
	s.messages[s.nextID] = m
	s.nextID++
	return m, nil
}

func (s *fakeMessageStore) MarkRead(_ context.Context, messageID, receiverID int64) (model.Message, error) {
	m, ok := s.messages[messageID]
	if !ok || m.ReceiverID != receiverID {
		return model.Message{}, apierror.New("NOT_FOUND", "message not found", "", http.StatusNotFound)
	}
	m.IsRead = true
	s.messages[messageID] = m
	return m, nil
}

type fakeUserReader struct {
	ids map[int64]bool
}

func (r fakeUserReader) FindByID(_ context.Context, id int64) (model.User, error) {
	if !r.ids[id] {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	return model.User{ID: id}, nil
}

type fakeProductReader struct {
	ids map[int64]bool
}

func (r fakeProductReader) FindByID(_ context.Context, id int64) (model.Product, error) {
	if !r.ids[id] {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	return model.Product{ID: id}, nil
}

func newTestMessageService(store *fakeMessageStore) *MessageService {
	users := fakeUserReader{ids: map[int64]bool{1: true, 2: true}}
	products := fakeProductReader{ids: map[int64]bool{10: true}}
	return NewMessageService(store, users, products, event.NewBus())
}

func TestMessageService_Send(t *testing.T) {
	store := newFakeMessageStore()
	svc := newTestMessageService(store)
	ctx := context.Background()
	sender := model.Identity{UserID: 1}

	t.Run("missing fields rejected", func(t *testing.T) {
		cases := []model.SendMessageRequest{
			{ReceiverID: 2, Message: "hi"},
			{ProductID: 10, Message: "hi"},
			{ProductID: 10, ReceiverID: 2, Message: "   "},
		}
		for _, req := range cases {
			_, err := svc.Send(ctx, sender, req)
			requireStatus(t, err, http.StatusBadRequest)
		}
	})

	t.Run("cannot message yourself", func(t *testing.T) {
		_, err := svc.Send(ctx, sender, model.SendMessageRequest{ProductID: 10, ReceiverID: 1, Message: "hi me"})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Send(ctx, sender, model.SendMessageRequest{ProductID: 99, ReceiverID: 2, Message: "hi"})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		_, err := svc.Send(ctx, sender, model.SendMessageRequest{ProductID: 10, ReceiverID: 99, Message: "hi"})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("sender comes from identity", func(t *testing.T) {
		message, err := svc.Send(ctx, sender, model.SendMessageRequest{ProductID: 10, ReceiverID: 2, Message: "  still available?  "})
		require.NoError(t, err)
		assert.Equal(t, int64(1), message.SenderID)
		assert.Equal(t, "still available?", message.Message)
	})
}

func TestMessageService_MarkRead(t *testing.T) {
	store := newFakeMessageStore()
	svc := newTestMessageService(store)
	ctx := context.Background()

	sent, err := svc.Send(ctx, model.Identity{UserID: 1}, model.SendMessageRequest{ProductID: 10, ReceiverID: 2, Message: "hi"})
	require.NoError(t, err)

	t.Run("only the receiver can mark read", func(t *testing.T) {
		_, err := svc.MarkRead(ctx, model.Identity{UserID: 1}, sent.ID)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("receiver marks read", func(t *testing.T) {
		read, err := svc.MarkRead(ctx, model.Identity{UserID: 2}, sent.ID)
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	})
}
