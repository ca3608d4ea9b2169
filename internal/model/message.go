package model

import "time"

type Message struct {
	ID           int64     `json:"id"`
	SenderID     int64     `json:"sender_id"`
	ReceiverID   int64     `json:"receiver_id"`
	ProductID    int64     `json:"product_id"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	SenderName   *string   `json:"sender_name,omitempty"`
	ReceiverName *string   `json:"receiver_name,omitempty"`
	ProductTitle *string   `json:"product_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SendMessageRequest struct {
	ProductID  int64  `json:"product_id"`
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
}
