package ws

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/corkboard/corkboard/internal/domain"
)

// ---------------------------------------------------------------------------
// In-memory fakes for the gateway's collaborators
// ---------------------------------------------------------------------------

type fakeTicketStore struct {
	mu         sync.Mutex
	tickets    map[string]int64
	resolveErr error // non-nil simulates a store outage
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[string]int64)}
}

func (f *fakeTicketStore) issue(userID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket := uuid.NewString()
	f.tickets[ticket] = userID
	return ticket
}

func (f *fakeTicketStore) Resolve(_ context.Context, ticket string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return 0, f.resolveErr
	}
	userID, ok := f.tickets[ticket]
	if !ok {
		return 0, fmt.Errorf("fake ticket store: %w", domain.ErrNotFound)
	}
	return userID, nil
}

func (f *fakeTicketStore) Revoke(_ context.Context, ticket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tickets, ticket)
	return nil
}

func (f *fakeTicketStore) has(ticket string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tickets[ticket]
	return ok
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("fake user repo: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("fake user repo: %w", domain.ErrNotFound)
}

func (f *fakeUserRepo) ListAdminIDs(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for id, u := range f.users {
		if u.IsAdmin {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeBoardRepo struct {
	mu      sync.Mutex
	boards  map[int64]*domain.Board
	members map[int64][]int64
}

func newFakeBoardRepo(boards ...*domain.Board) *fakeBoardRepo {
	f := &fakeBoardRepo{boards: make(map[int64]*domain.Board), members: make(map[int64][]int64)}
	for _, b := range boards {
		f.boards[b.ID] = b
	}
	return f
}

func (f *fakeBoardRepo) Create(_ context.Context, b *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards[b.ID] = b
	return nil
}

func (f *fakeBoardRepo) GetByID(_ context.Context, id int64) (*domain.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, fmt.Errorf("fake board repo: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (f *fakeBoardRepo) List(context.Context) ([]*domain.Board, error) {
	return nil, nil
}

func (f *fakeBoardRepo) AddMember(_ context.Context, boardID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[boardID] = append(f.members[boardID], userID)
	return nil
}

func (f *fakeBoardRepo) ListMemberIDs(_ context.Context, boardID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[boardID], nil
}

type fakeMessageRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMessageRepo) ListByBoard(_ context.Context, boardID int64) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Message
	for _, m := range f.created {
		if m.BoardID == boardID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Test harness: a hub wired to fakes behind a real HTTP server
// ---------------------------------------------------------------------------

type testEnv struct {
	hub      *Hub
	registry *Registry
	tickets  *fakeTicketStore
	users    *fakeUserRepo
	boards   *fakeBoardRepo
	messages *fakeMessageRepo
	server   *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		registry: NewRegistry(),
		tickets:  newFakeTicketStore(),
		users:    newFakeUserRepo(),
		boards:   newFakeBoardRepo(),
		messages: &fakeMessageRepo{},
	}

	gate := NewGate(env.tickets, env.users)
	publisher := NewPublisher(env.registry, env.boards, env.users)
	env.hub = NewHub(gate, env.registry, publisher, env.tickets, env.messages, 32)

	router := chi.NewRouter()
	router.Get("/ws/chat/{boardID}", env.hub.ServeBoard)
	router.Get("/ws/latest_message_update", env.hub.ServeInbox)
	router.Get("/ws/echo", env.hub.ServeEcho)

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)

	return env
}

// dial opens a websocket connection to path (e.g. "/ws/echo?uuid=...").
func (e *testEnv) dial(t *testing.T, path string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + path

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

// readFrame reads the next text frame with a deadline.
func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	return data
}

func writeFrame(t *testing.T, conn *websocket.Conn, data string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(data)))
}

// waitForMembers polls until group has want members.
func waitForMembers(r *Registry, group string, want int) bool {
	for range 200 {
		if r.MemberCount(group) == want {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
