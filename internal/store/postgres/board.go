package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

type BoardRepo struct {
	pool *pgxpool.Pool
}

func NewBoardRepo(pool *pgxpool.Pool) *BoardRepo {
	return &BoardRepo{pool: pool}
}

func (r *BoardRepo) Create(ctx context.Context, b *domain.Board) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO boards (name, description, start_date, due_date, progress, pic_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		b.Name, b.Description, b.StartDate, b.DueDate, b.Progress, b.PicURL,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: %w", err)
	}

	return nil
}

func (r *BoardRepo) GetByID(ctx context.Context, id int64) (*domain.Board, error) {
	var b domain.Board

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, start_date, due_date, progress, pic_url
		 FROM boards WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.StartDate, &b.DueDate, &b.Progress, &b.PicURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", err)
	}

	return &b, nil
}

func (r *BoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, start_date, due_date, progress, pic_url
		 FROM boards ORDER BY id LIMIT 1000`,
	)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.List: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.StartDate, &b.DueDate, &b.Progress, &b.PicURL); err != nil {
			return nil, fmt.Errorf("boardRepo.List: scan: %w", err)
		}
		boards = append(boards, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("boardRepo.List: %w", err)
	}

	return boards, nil
}

func (r *BoardRepo) AddMember(ctx context.Context, boardID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		boardID, userID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.AddMember: %w", err)
	}

	return nil
}

func (r *BoardRepo) ListMemberIDs(ctx context.Context, boardID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM board_members WHERE board_id = $1 ORDER BY user_id`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.ListMemberIDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("boardRepo.ListMemberIDs: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("boardRepo.ListMemberIDs: %w", err)
	}

	return ids, nil
}
