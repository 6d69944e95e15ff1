package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

func (r *CardRepo) Create(ctx context.Context, c *domain.Card) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO cards (board_id, title, description, priority, status, start_date, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		c.BoardID, c.Title, c.Description, c.Priority, c.Status, c.StartDate, c.DueDate,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("cardRepo.Create: %w", err)
	}

	return nil
}

func (r *CardRepo) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	var c domain.Card

	err := r.pool.QueryRow(ctx,
		`SELECT id, board_id, title, description, priority, status, start_date, due_date
		 FROM cards WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.BoardID, &c.Title, &c.Description, &c.Priority, &c.Status, &c.StartDate, &c.DueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("cardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cardRepo.GetByID: %w", err)
	}

	return &c, nil
}

func (r *CardRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, board_id, title, description, priority, status, start_date, due_date
		 FROM cards WHERE board_id = $1
		 ORDER BY id LIMIT 1000`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Title, &c.Description, &c.Priority, &c.Status, &c.StartDate, &c.DueDate); err != nil {
			return nil, fmt.Errorf("cardRepo.ListByBoard: scan: %w", err)
		}
		cards = append(cards, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cardRepo.ListByBoard: %w", err)
	}

	return cards, nil
}

func (r *CardRepo) UpdateStatus(ctx context.Context, id int64, status domain.CardStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cards SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("cardRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cardRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}
