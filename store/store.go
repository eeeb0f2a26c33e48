// Package store holds per-conversation message state and its pure mutation
// operations. It has no network awareness and never blocks. All mutation
// happens on the engine's single control thread, so the store carries no
// locks of its own.
package store

import (
	"duochat/domain"
	"fmt"
	"log/slog"
)

type conversation struct {
	peer     domain.ParticipantID
	messages []domain.Message
}

// MessageStore partitions messages by room key. Conversations are created
// on first use and persist for the process lifetime.
type MessageStore struct {
	log           *slog.Logger
	conversations map[domain.RoomKey]*conversation
}

func New(log *slog.Logger) *MessageStore {
	return &MessageStore{
		log:           log,
		conversations: make(map[domain.RoomKey]*conversation),
	}
}

func (s *MessageStore) room(key domain.RoomKey) *conversation {
	c, ok := s.conversations[key]
	if !ok {
		c = &conversation{}
		s.conversations[key] = c
	}
	return c
}

// ReplaceConversation is the authoritative overwrite used immediately after
// a history fetch. Optimistic entries absent from the authoritative set are
// discarded unless still genuinely pending, in which case they keep their
// position at the tail.
func (s *MessageStore) ReplaceConversation(key domain.RoomKey, peer domain.ParticipantID, messages []domain.Message) domain.Conversation {
	c := s.room(key)

	confirmed := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		if m.ClientKey != "" {
			confirmed[m.ClientKey] = struct{}{}
		}
	}

	var pending []domain.Message
	for _, m := range c.messages {
		if !m.Provisional {
			continue
		}
		if _, ok := confirmed[m.ClientKey]; ok {
			continue
		}
		pending = append(pending, m)
	}

	c.peer = peer
	c.messages = append(append([]domain.Message(nil), messages...), pending...)
	return s.snapshot(key, c)
}

// Append inserts at the tail. Ordering is arrival order, not CreatedAt
// order; out-of-order network delivery is not corrected.
func (s *MessageStore) Append(key domain.RoomKey, message domain.Message) domain.Conversation {
	c := s.room(key)
	c.messages = append(c.messages, message)
	return s.snapshot(key, c)
}

// ReconcileProvisional replaces the provisional entry matching the server
// message's idempotency key in place, preserving render position. If no
// provisional matches, it falls back to an append de-duplicated by client
// key and server id, so an echo that raced the optimistic insert can never
// render twice.
func (s *MessageStore) ReconcileProvisional(key domain.RoomKey, server domain.Message) domain.Conversation {
	c := s.room(key)

	if server.ClientKey != "" {
		for i, m := range c.messages {
			if m.Provisional && m.ClientKey == server.ClientKey {
				c.messages[i] = server
				return s.snapshot(key, c)
			}
		}
	}
	for _, m := range c.messages {
		if m.ID == server.ID || (server.ClientKey != "" && m.ClientKey == server.ClientKey) {
			s.log.Debug(fmt.Sprintf("Duplicate event for message %s ignored", server.ID))
			return s.snapshot(key, c)
		}
	}
	return s.Append(key, server)
}

// ApplyRetraction soft-deletes a message. A forEveryone retraction
// tombstones the record and clears its text for every viewer; a
// retraction-for-me hides it only when the local viewer requested it.
// Re-applying the same retraction is a no-op.
func (s *MessageStore) ApplyRetraction(key domain.RoomKey, id domain.MessageID, forEveryone bool, requester, viewer domain.ParticipantID) domain.Conversation {
	c := s.room(key)
	for i := range c.messages {
		m := &c.messages[i]
		if m.ID != id {
			continue
		}
		switch {
		case forEveryone:
			m.Deletion = domain.ViewTombstoned
			m.Text = ""
		case requester == viewer && m.Deletion == domain.ViewVisible:
			m.Deletion = domain.ViewHiddenForViewer
		}
		break
	}
	return s.snapshot(key, c)
}

// AdvanceStatus applies a delivery update only when it moves the message
// strictly forward in the lattice. Regressions are rejected silently.
func (s *MessageStore) AdvanceStatus(key domain.RoomKey, id domain.MessageID, next domain.Status) domain.Conversation {
	c := s.room(key)
	for i := range c.messages {
		m := &c.messages[i]
		if m.ID != id {
			continue
		}
		if m.Status.CanAdvanceTo(next) {
			m.Status = next
		} else {
			s.log.Debug(fmt.Sprintf("Status regression %s -> %s rejected for message %s", m.Status, next, id))
		}
		break
	}
	return s.snapshot(key, c)
}

// Snapshot returns the current conversation state for rendering.
func (s *MessageStore) Snapshot(key domain.RoomKey) domain.Conversation {
	c, ok := s.conversations[key]
	if !ok {
		return domain.Conversation{Room: key}
	}
	return s.snapshot(key, c)
}

func (s *MessageStore) snapshot(key domain.RoomKey, c *conversation) domain.Conversation {
	return domain.Conversation{
		Room:     key,
		Peer:     c.peer,
		Messages: append([]domain.Message(nil), c.messages...),
	}
}
