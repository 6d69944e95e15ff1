package domain

import (
	"context"
	"time"
)

type Message struct {
	ID       int64     `json:"id"`
	BoardID  int64     `json:"board"`
	SentBy   int64     `json:"sent_by"`
	Content  string    `json:"content"`
	DateSent time.Time `json:"date_sent"`
}

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	ListByBoard(ctx context.Context, boardID int64) ([]*Message, error)
}
