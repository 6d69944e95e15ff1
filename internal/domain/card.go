package domain

import (
	"context"
	"time"
)

type CardStatus string

const (
	CardStatusTodo    CardStatus = "TODO"
	CardStatusDoing   CardStatus = "DOING"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusDone    CardStatus = "DONE"
)

// Valid reports whether s is one of the known card statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusTodo, CardStatusDoing, CardStatusBlocked, CardStatusDone:
		return true
	default:
		return false
	}
}

type CardPriority string

const (
	CardPriorityLow    CardPriority = "LOW"
	CardPriorityMedium CardPriority = "MEDIUM"
	CardPriorityHigh   CardPriority = "HIGH"
	CardPriorityUrgent CardPriority = "URGENT"
)

func (p CardPriority) Valid() bool {
	switch p {
	case CardPriorityLow, CardPriorityMedium, CardPriorityHigh, CardPriorityUrgent:
		return true
	default:
		return false
	}
}

type Card struct {
	ID          int64        `json:"id"`
	BoardID     int64        `json:"board"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    CardPriority `json:"priority"`
	Status      CardStatus   `json:"status"`
	StartDate   time.Time    `json:"start_date"`
	DueDate     time.Time    `json:"due_date"`
}

type CardRepository interface {
	Create(ctx context.Context, c *Card) error
	GetByID(ctx context.Context, id int64) (*Card, error)
	ListByBoard(ctx context.Context, boardID int64) ([]*Card, error)
	UpdateStatus(ctx context.Context, id int64, status CardStatus) error
}
