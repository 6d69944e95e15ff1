package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/corkboard/corkboard/internal/api/v1"
	"github.com/corkboard/corkboard/internal/domain"
)

func TestCreateBoard(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var memberAdded bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			boards: &mockBoardRepo{
				createFunc: func(_ context.Context, b *domain.Board) error {
					assert.Equal(t, "Sprint 9", b.Name)
					b.ID = 42
					return nil
				},
				addMemberFunc: func(_ context.Context, boardID, userID int64) error {
					memberAdded = true
					assert.Equal(t, int64(42), boardID)
					assert.Equal(t, int64(7), userID)
					return nil
				},
			},
		}
		v1.RegisterBoardRoutes(api, store)

		resp := api.PostCtx(userCtx(7), "/boards", map[string]any{
			"name":        "Sprint 9",
			"description": "Q3 release push",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, memberAdded, "creator must be added as a member")

		var board domain.Board
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &board))
		assert.Equal(t, int64(42), board.ID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, &mockDataStore{boards: &mockBoardRepo{}})

		resp := api.Post("/boards", map[string]any{"name": "Sprint 9"})
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

func TestGetBoard(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			boards: &mockBoardRepo{
				getByIDFunc: func(_ context.Context, id int64) (*domain.Board, error) {
					assert.Equal(t, int64(42), id)
					return &domain.Board{ID: 42, Name: "Sprint 9"}, nil
				},
			},
		}
		v1.RegisterBoardRoutes(api, store)

		resp := api.Get("/boards/42")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Sprint 9")
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			boards: &mockBoardRepo{
				getByIDFunc: func(_ context.Context, _ int64) (*domain.Board, error) {
					return nil, domain.ErrNotFound
				},
			},
		}
		v1.RegisterBoardRoutes(api, store)

		resp := api.Get("/boards/99")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestAddBoardMember(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var added bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			boards: &mockBoardRepo{
				getByIDFunc: func(_ context.Context, id int64) (*domain.Board, error) {
					return &domain.Board{ID: id}, nil
				},
				addMemberFunc: func(_ context.Context, boardID, userID int64) error {
					added = true
					assert.Equal(t, int64(42), boardID)
					assert.Equal(t, int64(8), userID)
					return nil
				},
			},
			users: &mockUserRepo{
				getByIDFunc: func(_ context.Context, id int64) (*domain.User, error) {
					return &domain.User{ID: id}, nil
				},
			},
		}
		v1.RegisterBoardRoutes(api, store)

		resp := api.Post("/boards/42/members", map[string]any{"user_id": 8})
		require.Equal(t, http.StatusNoContent, resp.Code)
		assert.True(t, added)
	})

	t.Run("unknown_user", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			boards: &mockBoardRepo{
				getByIDFunc: func(_ context.Context, id int64) (*domain.Board, error) {
					return &domain.Board{ID: id}, nil
				},
			},
			users: &mockUserRepo{
				getByIDFunc: func(_ context.Context, _ int64) (*domain.User, error) {
					return nil, domain.ErrNotFound
				},
			},
		}
		v1.RegisterBoardRoutes(api, store)

		resp := api.Post("/boards/42/members", map[string]any{"user_id": 99})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
