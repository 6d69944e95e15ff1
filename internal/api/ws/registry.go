package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// envelope is the outbound frame shape for every broadcast event.
type envelope struct {
	Type    string `json:"type"`
	Message any    `json:"message"`
}

// Registry tracks which sessions belong to which named broadcast group and
// fans published events out to current members. All methods are safe for
// concurrent use; groups exist only while they have members.
type Registry struct {
	mu     sync.RWMutex
	groups map[string]map[*session]struct{}
}

func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]map[*session]struct{})}
}

// Join adds a session to a group. Re-joining is a no-op.
func (r *Registry) Join(group string, s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		members = make(map[*session]struct{})
		r.groups[group] = members
	}
	members[s] = struct{}{}
}

// Leave removes a session from a group. Leaving a group the session never
// joined is a no-op.
func (r *Registry) Leave(group string, s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		return
	}
	delete(members, s)
	if len(members) == 0 {
		delete(r.groups, group)
	}
}

// LeaveAll removes a session from every group it joined. Called on every
// disconnect path before the session is torn down.
func (r *Registry) LeaveAll(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for group, members := range r.groups {
		delete(members, s)
		if len(members) == 0 {
			delete(r.groups, group)
		}
	}
}

// MemberCount returns the number of sessions currently joined to a group.
func (r *Registry) MemberCount(group string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[group])
}

// Publish delivers {type, message} to every current member of a group,
// best-effort. The member set is snapshotted before delivery so a
// concurrent leave never races the iteration; closed or slow members are
// skipped. An empty group drops the event.
func (r *Registry) Publish(group, eventType string, message any) {
	data, err := json.Marshal(envelope{Type: eventType, Message: message})
	if err != nil {
		log.Error().Err(err).Str("group", group).Str("event", eventType).Msg("marshal broadcast event")
		return
	}

	r.mu.RLock()
	members := make([]*session, 0, len(r.groups[group]))
	for s := range r.groups[group] {
		members = append(members, s)
	}
	r.mu.RUnlock()

	for _, s := range members {
		if !s.deliver(data) {
			log.Debug().Str("group", group).Int64("user_id", s.user.ID).Msg("skipped unreachable group member")
		}
	}
}
