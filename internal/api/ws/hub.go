package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/corkboard/corkboard/internal/domain"
)

// Hub owns the websocket endpoints. Every handler runs the same lifecycle:
// gate the ticket, accept the upgrade, join the route's groups, pump inbound
// frames until disconnect, then leave all groups and revoke the ticket.
type Hub struct {
	gate       *Gate
	registry   *Registry
	publisher  *Publisher
	tickets    TicketStore
	messages   domain.MessageRepository
	sendBuffer int
}

func NewHub(gate *Gate, registry *Registry, publisher *Publisher, tickets TicketStore, messages domain.MessageRepository, sendBuffer int) *Hub {
	return &Hub{
		gate:       gate,
		registry:   registry,
		publisher:  publisher,
		tickets:    tickets,
		messages:   messages,
		sendBuffer: sendBuffer,
	}
}

// inboundChatFrame is what a board channel client sends to post a message.
type inboundChatFrame struct {
	Board   int64  `json:"board"`
	SentBy  int64  `json:"sent_by"`
	Content string `json:"content"`
}

// ServeBoard handles a board channel connection. The connection joins
// `board_<id>` and receives that board's chat and card status events;
// inbound frames create chat messages and trigger their fanout.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := strconv.ParseInt(chi.URLParam(r, "boardID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid board id", http.StatusBadRequest)
		return
	}

	user, ticket, err := h.gate.Authenticate(r)
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("websocket rejected")
		http.Error(w, "unauthorized", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	sess := newSession(user, conn, h.sendBuffer)
	h.registry.Join(BoardGroup(boardID), sess)
	defer h.teardown(sess, ticket)

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Debug().Err(err).Int64("user_id", user.ID).Msg("board channel closed")
			return
		}

		var frame inboundChatFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			// Recoverable per-frame error: drop it, keep the connection.
			log.Debug().Err(err).Int64("user_id", user.ID).Msg("malformed chat frame dropped")
			continue
		}

		msg := &domain.Message{
			BoardID:  frame.Board,
			SentBy:   frame.SentBy,
			Content:  frame.Content,
			DateSent: time.Now(),
		}
		if err := h.messages.Create(ctx, msg); err != nil {
			log.Error().Err(err).Int64("board_id", frame.Board).Msg("store chat message")
			continue
		}

		h.publisher.MessageCreated(ctx, msg)
	}
}

// ServeInbox handles a personal inbox connection. The connection joins
// `user_<id>_latest_messages`; nothing meaningful arrives inbound, the read
// loop exists only to notice the disconnect.
func (h *Hub) ServeInbox(w http.ResponseWriter, r *http.Request) {
	user, ticket, err := h.gate.Authenticate(r)
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("websocket rejected")
		http.Error(w, "unauthorized", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	sess := newSession(user, conn, h.sendBuffer)
	h.registry.Join(UserInboxGroup(user.ID), sess)
	defer h.teardown(sess, ticket)

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			log.Debug().Err(err).Int64("user_id", user.ID).Msg("inbox channel closed")
			return
		}
	}
}

// echoFrame is both the inbound and outbound shape of the echo channel.
type echoFrame struct {
	Message string `json:"message"`
}

// ServeEcho handles the diagnostic echo channel. It joins no group and
// replies "Echo <n>: <message>" for the n-th received frame, 1-indexed.
func (h *Hub) ServeEcho(w http.ResponseWriter, r *http.Request) {
	user, ticket, err := h.gate.Authenticate(r)
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("websocket rejected")
		http.Error(w, "unauthorized", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()
	defer h.revokeTicket(ticket)

	ctx := r.Context()
	if err := writeEcho(ctx, conn, echoFrame{Message: "Connected"}); err != nil {
		return
	}

	n := 0
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Debug().Err(err).Int64("user_id", user.ID).Msg("echo channel closed")
			return
		}

		var frame echoFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Debug().Err(err).Msg("malformed echo frame dropped")
			continue
		}

		n++
		reply := echoFrame{Message: fmt.Sprintf("Echo %d: %s", n, frame.Message)}
		if err := writeEcho(ctx, conn, reply); err != nil {
			return
		}
	}
}

func writeEcho(ctx context.Context, conn *websocket.Conn, frame echoFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := conn.Write(wctx, websocket.MessageText, data); err != nil {
		log.Debug().Err(err).Msg("echo write")
		return err
	}
	return nil
}

// teardown runs on every disconnect path: membership is removed from every
// group before the session is gone, and the auth ticket is revoked so it
// cannot outlive the connection it admitted.
func (h *Hub) teardown(sess *session, ticket string) {
	h.registry.LeaveAll(sess)
	sess.close()
	h.revokeTicket(ticket)
}

func (h *Hub) revokeTicket(ticket string) {
	// The request context is already done at disconnect time.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.tickets.Revoke(ctx, ticket); err != nil {
		log.Warn().Err(err).Msg("revoke websocket ticket")
	}
}
