package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (board_id, sent_by, content, date_sent)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		m.BoardID, m.SentBy, m.Content, m.DateSent,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("messageRepo.Create: %w", err)
	}

	return nil
}

func (r *MessageRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, board_id, sent_by, content, date_sent
		 FROM messages WHERE board_id = $1
		 ORDER BY date_sent LIMIT 1000`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("messageRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.BoardID, &m.SentBy, &m.Content, &m.DateSent); err != nil {
			return nil, fmt.Errorf("messageRepo.ListByBoard: scan: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("messageRepo.ListByBoard: %w", err)
	}

	return messages, nil
}
