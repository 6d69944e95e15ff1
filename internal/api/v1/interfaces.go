package v1

import (
	"context"

	"github.com/corkboard/corkboard/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Boards() domain.BoardRepository
	Cards() domain.CardRepository
	Messages() domain.MessageRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Signup(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TicketIssuer mints short-lived websocket tickets. *redis.TicketStore
// satisfies this interface.
type TicketIssuer interface {
	Issue(ctx context.Context, userID int64) (string, error)
}

// EventPublisher fans mutations out to live websocket groups. *ws.Publisher
// satisfies this interface.
type EventPublisher interface {
	CardStatusChanged(ctx context.Context, card *domain.Card)
}
