package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/corkboard/corkboard/internal/domain"
)

const writeTimeout = 5 * time.Second

// session is one live authenticated connection. Outbound events are queued
// on send and drained by a single writer goroutine so concurrent publishers
// never write to the transport directly.
type session struct {
	user *domain.User
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSession(user *domain.User, conn *websocket.Conn, buffer int) *session {
	s := &session{
		user: user,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

func (s *session) writeLoop() {
	for {
		select {
		case msg := <-s.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := s.conn.Write(ctx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				log.Debug().Err(err).Int64("user_id", s.user.ID).Msg("websocket write")
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// close marks the session as torn down and stops the writer. Idempotent.
func (s *session) close() {
	s.once.Do(func() { close(s.done) })
}

// deliver queues data for the writer. Returns false when the session is
// closed or its queue is full; the event is then skipped, never blocked on.
func (s *session) deliver(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- data:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}
