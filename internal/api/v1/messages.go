package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/corkboard/corkboard/internal/domain"
)

type ListMessagesInput struct {
	BoardID int64 `query:"board" required:"true" doc:"Board ID"`
}

type ListMessagesOutput struct {
	Body []*domain.Message
}

// RegisterMessageRoutes exposes chat history. New messages arrive over the
// board websocket channel, this endpoint backfills the scrollback.
func RegisterMessageRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/messages",
		Summary:     "List chat messages on a board",
		Tags:        []string{"Messages"},
	}, func(ctx context.Context, input *ListMessagesInput) (*ListMessagesOutput, error) {
		if _, err := store.Boards().GetByID(ctx, input.BoardID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate board", err)
		}

		messages, err := store.Messages().ListByBoard(ctx, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list messages", err)
		}
		return &ListMessagesOutput{Body: messages}, nil
	})
}
