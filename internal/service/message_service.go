package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-parts-market/internal/event"
	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type MessageStore interface {
	ListByProduct(ctx context.Context, productID int64) ([]model.Message, error)
	Create(ctx context.Context, senderID, receiverID, productID int64, body string) (model.Message, error)
	MarkRead(ctx context.Context, messageID, receiverID int64) (model.Message, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
}

type MessageService struct {
	store    MessageStore
	users    UserReader
	products ProductReader
	bus      event.Bus
}

func NewMessageService(store MessageStore, users UserReader, products ProductReader, bus event.Bus) *MessageService {
	return &MessageService{store: store, users: users, products: products, bus: bus}
}

func (s *MessageService) Thread(ctx context.Context, productID int64) ([]model.Message, error) {
	return s.store.ListByProduct(ctx, productID)
}

// Send creates a message about a product. The sender is the authenticated
// identity; product and receiver must exist.
func (s *MessageService) Send(ctx context.Context, identity model.Identity, req model.SendMessageRequest) (model.Message, error) {
	if req.ProductID <= 0 || req.ReceiverID <= 0 || strings.TrimSpace(req.Message) == "" {
		return model.Message{}, apierror.New("BAD_REQUEST", "product_id, receiver_id and message are required", "", http.StatusBadRequest)
	}
	if req.ReceiverID == identity.UserID {
		return model.Message{}, apierror.New("BAD_REQUEST", "cannot message yourself", "receiver_id", http.StatusBadRequest)
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return model.Message{}, err
	}
	if _, err := s.users.FindByID(ctx, req.ReceiverID); err != nil {
		return model.Message{}, err
	}

	message, err := s.store.Create(ctx, identity.UserID, req.ReceiverID, req.ProductID, strings.TrimSpace(req.Message))
	if err != nil {
		return model.Message{}, err
	}

	s.publish(event.TypeMessageCreated, message, identity.UserID)
	return message, nil
}

// MarkRead is receiver-only; the scoped store query makes a foreign or
// missing message indistinguishable (both NotFound).
func (s *MessageService) MarkRead(ctx context.Context, identity model.Identity, messageID int64) (model.Message, error) {
	message, err := s.store.MarkRead(ctx, messageID, identity.UserID)
	if err != nil {
		return model.Message{}, err
	}

	s.publish(event.TypeMessageRead, message, identity.UserID)
	return message, nil
}

func (s *MessageService) publish(t event.Type, payload any, actorID int64) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ActorID:   actorID,
	})
}
