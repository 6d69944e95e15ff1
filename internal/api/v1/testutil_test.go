package v1_test

import (
	"context"

	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the authenticated user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID int64) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, userID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users    domain.UserRepository
	boards   domain.BoardRepository
	cards    domain.CardRepository
	messages domain.MessageRepository
}

func (m *mockDataStore) Users() domain.UserRepository       { return m.users }
func (m *mockDataStore) Boards() domain.BoardRepository     { return m.boards }
func (m *mockDataStore) Cards() domain.CardRepository       { return m.cards }
func (m *mockDataStore) Messages() domain.MessageRepository { return m.messages }

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc       func(ctx context.Context, u *domain.User) error
	getByIDFunc      func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	listAdminIDsFunc func(ctx context.Context) ([]int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) ListAdminIDs(ctx context.Context) ([]int64, error) {
	return m.listAdminIDsFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock BoardRepository
// ---------------------------------------------------------------------------

type mockBoardRepo struct {
	createFunc        func(ctx context.Context, b *domain.Board) error
	getByIDFunc       func(ctx context.Context, id int64) (*domain.Board, error)
	listFunc          func(ctx context.Context) ([]*domain.Board, error)
	addMemberFunc     func(ctx context.Context, boardID, userID int64) error
	listMemberIDsFunc func(ctx context.Context, boardID int64) ([]int64, error)
}

func (m *mockBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	return m.createFunc(ctx, b)
}

func (m *mockBoardRepo) GetByID(ctx context.Context, id int64) (*domain.Board, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	return m.listFunc(ctx)
}

func (m *mockBoardRepo) AddMember(ctx context.Context, boardID, userID int64) error {
	return m.addMemberFunc(ctx, boardID, userID)
}

func (m *mockBoardRepo) ListMemberIDs(ctx context.Context, boardID int64) ([]int64, error) {
	return m.listMemberIDsFunc(ctx, boardID)
}

// ---------------------------------------------------------------------------
// Mock CardRepository
// ---------------------------------------------------------------------------

type mockCardRepo struct {
	createFunc       func(ctx context.Context, c *domain.Card) error
	getByIDFunc      func(ctx context.Context, id int64) (*domain.Card, error)
	listByBoardFunc  func(ctx context.Context, boardID int64) ([]*domain.Card, error)
	updateStatusFunc func(ctx context.Context, id int64, status domain.CardStatus) error
}

func (m *mockCardRepo) Create(ctx context.Context, c *domain.Card) error {
	return m.createFunc(ctx, c)
}

func (m *mockCardRepo) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCardRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Card, error) {
	return m.listByBoardFunc(ctx, boardID)
}

func (m *mockCardRepo) UpdateStatus(ctx context.Context, id int64, status domain.CardStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

// ---------------------------------------------------------------------------
// Mock MessageRepository
// ---------------------------------------------------------------------------

type mockMessageRepo struct {
	createFunc      func(ctx context.Context, msg *domain.Message) error
	listByBoardFunc func(ctx context.Context, boardID int64) ([]*domain.Message, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return m.createFunc(ctx, msg)
}

func (m *mockMessageRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Message, error) {
	return m.listByBoardFunc(ctx, boardID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signupFunc  func(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)
	signinFunc  func(ctx context.Context, email, password string) (string, string, error)
	refreshFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	return m.signupFunc(ctx, email, password, firstName, lastName)
}

func (m *mockAuthService) Signin(ctx context.Context, email, password string) (string, string, error) {
	return m.signinFunc(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock TicketIssuer and EventPublisher
// ---------------------------------------------------------------------------

type mockTicketIssuer struct {
	issueFunc func(ctx context.Context, userID int64) (string, error)
}

func (m *mockTicketIssuer) Issue(ctx context.Context, userID int64) (string, error) {
	return m.issueFunc(ctx, userID)
}

type mockEventPublisher struct {
	cardStatusChanged []*domain.Card
}

func (m *mockEventPublisher) CardStatusChanged(_ context.Context, card *domain.Card) {
	m.cardStatusChanged = append(m.cardStatusChanged, card)
}
