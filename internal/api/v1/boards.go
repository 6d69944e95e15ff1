package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type CreateBoardInput struct {
	Body struct {
		Name        string    `json:"name" minLength:"1" maxLength:"255" doc:"Board name"`
		Description string    `json:"description,omitempty" doc:"Board description"`
		StartDate   time.Time `json:"start_date,omitempty" doc:"Project start date"`
		DueDate     time.Time `json:"due_date,omitempty" doc:"Project due date"`
		Pic         *string   `json:"pic,omitempty" doc:"Board picture URL"`
	}
}

type CreateBoardOutput struct {
	Body *domain.Board
}

type ListBoardsOutput struct {
	Body []*domain.Board
}

type GetBoardInput struct {
	ID int64 `path:"id" doc:"Board ID"`
}

type GetBoardOutput struct {
	Body *domain.Board
}

type AddBoardMemberInput struct {
	ID   int64 `path:"id" doc:"Board ID"`
	Body struct {
		UserID int64 `json:"user_id" doc:"User to add to the board"`
	}
}

func RegisterBoardRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-board",
		Method:      http.MethodPost,
		Path:        "/boards",
		Summary:     "Create a new board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardInput) (*CreateBoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		b := &domain.Board{
			Name:        input.Body.Name,
			Description: input.Body.Description,
			StartDate:   input.Body.StartDate,
			DueDate:     input.Body.DueDate,
			PicURL:      input.Body.Pic,
		}
		if err := store.Boards().Create(ctx, b); err != nil {
			return nil, huma.Error500InternalServerError("failed to create board", err)
		}

		// The creator is always a member of their own board.
		if err := store.Boards().AddMember(ctx, b.ID, userID); err != nil {
			return nil, huma.Error500InternalServerError("failed to add creator to board", err)
		}

		return &CreateBoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List all boards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		boards, err := store.Boards().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list boards", err)
		}
		return &ListBoardsOutput{Body: boards}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{id}",
		Summary:     "Get a board by ID",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
		b, err := store.Boards().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to get board", err)
		}
		return &GetBoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-board-member",
		Method:      http.MethodPost,
		Path:        "/boards/{id}/members",
		Summary:     "Add a user to a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *AddBoardMemberInput) (*struct{}, error) {
		if _, err := store.Boards().GetByID(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate board", err)
		}

		if _, err := store.Users().GetByID(ctx, input.Body.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate user", err)
		}

		if err := store.Boards().AddMember(ctx, input.ID, input.Body.UserID); err != nil {
			return nil, huma.Error500InternalServerError("failed to add board member", err)
		}
		return nil, nil
	})
}
