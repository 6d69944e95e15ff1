package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/corkboard/corkboard/internal/domain"
)

// ErrAnonymous is returned for any connection attempt that cannot be bound
// to a live user identity: missing ticket, expired or unknown ticket,
// unreachable ticket store, or a user that no longer exists.
var ErrAnonymous = errors.New("ws: anonymous connection")

// TicketStore is the ticket backend the gateway consumes.
// *redis.TicketStore satisfies this interface.
type TicketStore interface {
	Resolve(ctx context.Context, ticket string) (int64, error)
	Revoke(ctx context.Context, ticket string) error
}

// Gate authenticates every inbound connection attempt before the protocol
// upgrade. A failed gate means the handshake is never accepted.
type Gate struct {
	tickets TicketStore
	users   domain.UserRepository
}

func NewGate(tickets TicketStore, users domain.UserRepository) *Gate {
	return &Gate{tickets: tickets, users: users}
}

// Authenticate resolves the `uuid` query parameter to a user. Any failure,
// including a ticket store outage, yields ErrAnonymous: the gate fails
// closed, never open. On success it returns the user and the redeemed
// ticket so the caller can revoke it at disconnect.
func (g *Gate) Authenticate(r *http.Request) (*domain.User, string, error) {
	ticket := r.URL.Query().Get("uuid")
	if ticket == "" {
		return nil, "", fmt.Errorf("ws.Gate.Authenticate: no ticket in query string: %w", ErrAnonymous)
	}

	userID, err := g.tickets.Resolve(r.Context(), ticket)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("ticket store unavailable, rejecting connection")
		}
		return nil, "", fmt.Errorf("ws.Gate.Authenticate: %w", ErrAnonymous)
	}

	user, err := g.users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, "", fmt.Errorf("ws.Gate.Authenticate: user %d: %w", userID, ErrAnonymous)
	}

	return user, ticket, nil
}
