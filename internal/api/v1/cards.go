package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/corkboard/corkboard/internal/domain"
)

type CreateCardInput struct {
	Body struct {
		BoardID     int64               `json:"board" doc:"Board ID"`
		Title       string              `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
		Description string              `json:"description,omitempty" doc:"Card description"`
		Priority    domain.CardPriority `json:"priority" doc:"LOW, MEDIUM, HIGH or URGENT"`
		StartDate   time.Time           `json:"start_date,omitempty" doc:"Work start date"`
		DueDate     time.Time           `json:"due_date,omitempty" doc:"Work due date"`
	}
}

type CreateCardOutput struct {
	Body *domain.Card
}

type ListCardsInput struct {
	BoardID int64 `query:"board" required:"true" doc:"Board ID"`
}

type ListCardsOutput struct {
	Body []*domain.Card
}

type UpdateCardStatusInput struct {
	ID   int64 `path:"id" doc:"Card ID"`
	Body struct {
		Status domain.CardStatus `json:"status" minLength:"1" doc:"TODO, DOING, BLOCKED or DONE"`
	}
}

type UpdateCardStatusOutput struct {
	Body *domain.Card
}

func RegisterCardRoutes(api huma.API, store DataStore, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-card",
		Method:      http.MethodPost,
		Path:        "/cards",
		Summary:     "Create a new card",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
		if !input.Body.Priority.Valid() {
			return nil, huma.Error422UnprocessableEntity("invalid priority")
		}

		if _, err := store.Boards().GetByID(ctx, input.Body.BoardID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate board", err)
		}

		c := &domain.Card{
			BoardID:     input.Body.BoardID,
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Priority:    input.Body.Priority,
			Status:      domain.CardStatusTodo,
			StartDate:   input.Body.StartDate,
			DueDate:     input.Body.DueDate,
		}
		if err := store.Cards().Create(ctx, c); err != nil {
			return nil, huma.Error500InternalServerError("failed to create card", err)
		}

		return &CreateCardOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodGet,
		Path:        "/cards",
		Summary:     "List cards on a board",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *ListCardsInput) (*ListCardsOutput, error) {
		cards, err := store.Cards().ListByBoard(ctx, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list cards", err)
		}
		return &ListCardsOutput{Body: cards}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-card-status",
		Method:      http.MethodPatch,
		Path:        "/cards/{id}/status",
		Summary:     "Move a card to a new status",
		Tags:        []string{"Cards"},
	}, func(ctx context.Context, input *UpdateCardStatusInput) (*UpdateCardStatusOutput, error) {
		if !input.Body.Status.Valid() {
			return nil, huma.Error422UnprocessableEntity("invalid status")
		}

		if err := store.Cards().UpdateStatus(ctx, input.ID, input.Body.Status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("card not found")
			}
			return nil, huma.Error500InternalServerError("failed to update card status", err)
		}

		c, err := store.Cards().GetByID(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to reload card", err)
		}

		// Everyone watching the board sees the move without refreshing.
		events.CardStatusChanged(ctx, c)

		return &UpdateCardStatusOutput{Body: c}, nil
	})
}
