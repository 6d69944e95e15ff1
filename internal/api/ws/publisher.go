package ws

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/corkboard/corkboard/internal/domain"
)

// MessagePayload is the serialized chat message broadcast to board and
// inbox groups.
type MessagePayload struct {
	ID       int64         `json:"id"`
	Board    *domain.Board `json:"board"`
	SentBy   *domain.User  `json:"sent_by"`
	Content  string        `json:"content"`
	DateSent time.Time     `json:"date_sent"`
}

// CardStatusPayload is the minimal card mutation event broadcast to a
// board group.
type CardStatusPayload struct {
	CardID    int64             `json:"card_id"`
	NewStatus domain.CardStatus `json:"new_status"`
}

// Publisher translates domain mutations into group broadcasts. It is invoked
// after the mutation has committed; every failure here is logged and
// swallowed so a broadcast problem can never fail the originating mutation.
type Publisher struct {
	registry *Registry
	boards   domain.BoardRepository
	users    domain.UserRepository
}

func NewPublisher(registry *Registry, boards domain.BoardRepository, users domain.UserRepository) *Publisher {
	return &Publisher{registry: registry, boards: boards, users: users}
}

// MessageCreated broadcasts a freshly stored chat message to the board's
// group, then to the personal inbox of every board member and every admin
// not already a member (the union avoids double delivery).
func (p *Publisher) MessageCreated(ctx context.Context, msg *domain.Message) {
	board, err := p.boards.GetByID(ctx, msg.BoardID)
	if err != nil {
		log.Error().Err(err).Int64("board_id", msg.BoardID).Msg("message fanout: board lookup")
		return
	}

	sender, err := p.users.GetByID(ctx, msg.SentBy)
	if err != nil {
		log.Error().Err(err).Int64("user_id", msg.SentBy).Msg("message fanout: sender lookup")
		return
	}

	payload := MessagePayload{
		ID:       msg.ID,
		Board:    board,
		SentBy:   sender,
		Content:  msg.Content,
		DateSent: msg.DateSent,
	}

	p.registry.Publish(BoardGroup(board.ID), EventChatMessage, payload)

	memberIDs, err := p.boards.ListMemberIDs(ctx, board.ID)
	if err != nil {
		log.Error().Err(err).Int64("board_id", board.ID).Msg("message fanout: member list")
	}

	adminIDs, err := p.users.ListAdminIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("message fanout: admin list")
	}

	seen := make(map[int64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		seen[id] = struct{}{}
		p.registry.Publish(UserInboxGroup(id), EventLatestMessageUpdate, payload)
	}
	for _, id := range adminIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		p.registry.Publish(UserInboxGroup(id), EventLatestMessageUpdate, payload)
	}
}

// CardStatusChanged broadcasts a card's new status to its board group.
func (p *Publisher) CardStatusChanged(_ context.Context, card *domain.Card) {
	p.registry.Publish(BoardGroup(card.BoardID), EventCardStatusUpdate, CardStatusPayload{
		CardID:    card.ID,
		NewStatus: card.Status,
	})
}
