// Package domain contains core concepts of the private messaging client.
// This file defines Message records and their delivery/deletion state.
// A message's text is never edited; it changes only through retraction.
package domain

import (
	"fmt"
	"time"
)

// MessageID is either a locally generated provisional identifier or the
// server-assigned identifier once the authoritative event arrives.
type MessageID string

// Status is the delivery progression of a message.
// It only moves forward: sent < delivered < seen.
type Status int

const (
	StatusSent Status = iota
	StatusDelivered
	StatusSeen
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusDelivered:
		return "delivered"
	case StatusSeen:
		return "seen"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseStatus maps a wire status string back to its lattice value.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "sent", "":
		return StatusSent, nil
	case "delivered":
		return StatusDelivered, nil
	case "seen":
		return StatusSeen, nil
	default:
		return StatusSent, fmt.Errorf("unknown status %q", s)
	}
}

// CanAdvanceTo reports whether moving to next respects the lattice order.
// A status never moves backward or to itself.
func (s Status) CanAdvanceTo(next Status) bool {
	return next > s
}

// DeletionView is the per-viewer visibility of a message after retraction.
type DeletionView int

const (
	// ViewVisible is the default: the message is rendered as sent.
	ViewVisible DeletionView = iota
	// ViewTombstoned marks a retraction for everyone: the text is cleared
	// but the record keeps its id and position.
	ViewTombstoned
	// ViewHiddenForViewer marks a retraction for the local viewer only.
	// The other participant still sees the original message.
	ViewHiddenForViewer
)

// ReplySnapshot is an embedded copy of a referenced message taken at send
// time. It is deliberately not a live reference: retracting the original
// never rewrites an already rendered reply.
type ReplySnapshot struct {
	Sender ParticipantID
	Text   string
}

// Message is one entry of a two-party conversation.
type Message struct {
	ID MessageID
	// ClientKey is the client-generated idempotency key carried in the
	// outgoing payload and echoed by the server. Reconciliation matches
	// on it, never on array position or timing.
	ClientKey   string
	Provisional bool
	Sender      ParticipantID
	Receiver    ParticipantID
	Text        string
	CreatedAt   time.Time
	ReplyTo     *ReplySnapshot
	Status      Status
	Deletion    DeletionView
}

// Snapshot captures the reply reference of this message as it reads now.
func (m Message) Snapshot() ReplySnapshot {
	return ReplySnapshot{Sender: m.Sender, Text: m.Text}
}

// Room returns the conversation key this message belongs to.
func (m Message) Room() RoomKey {
	return DeriveKey(m.Sender, m.Receiver)
}
