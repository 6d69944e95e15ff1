package domain

import (
	"context"
	"time"
)

type Board struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	DueDate     time.Time `json:"due_date"`
	Progress    float64   `json:"progress"`
	PicURL      *string   `json:"pic"` // public URL, null when unset
}

type BoardRepository interface {
	Create(ctx context.Context, b *Board) error
	GetByID(ctx context.Context, id int64) (*Board, error)
	List(ctx context.Context) ([]*Board, error)
	AddMember(ctx context.Context, boardID, userID int64) error
	ListMemberIDs(ctx context.Context, boardID int64) ([]int64, error)
}
