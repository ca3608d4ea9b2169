package event

type Type string

const (
	TypeProductCreated Type = "product.created"
	TypeProductUpdated Type = "product.updated"
	TypeProductDeleted Type = "product.deleted"
	TypeMessageCreated Type = "message.created"
	TypeMessageRead    Type = "message.read"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
	ActorID   int64  `json:"actor_id,omitempty"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
