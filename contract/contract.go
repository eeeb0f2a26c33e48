//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"duochat/domain"
	"duochat/domain/event"
	"encoding/json"
)

// Frame is one event on the wire: a tag plus its raw payload.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"data"`
}

// RawChannel is a live bidirectional connection. Implementations carry no
// business logic; the connection manager owns lifecycle and dispatch.
type RawChannel interface {
	ReadFrame() (Frame, error)
	WriteFrame(Frame) error
	Close() error
}

// Dialer opens an authenticated channel for a session token.
type Dialer interface {
	Dial(ctx context.Context, token string) (RawChannel, error)
}

// EventHandler receives the raw payload of a subscribed event.
// Handlers for one event name run in registration order.
type EventHandler func(payload json.RawMessage)

// IConnection is the engine-facing surface of the connection manager.
type IConnection interface {
	Publish(out event.Outbound) error
	Subscribe(name string, handler EventHandler)
	OnConnected(hook func())
}

// IChatAPI is the REST collaborator surface: the user directory and the
// authoritative message history.
type IChatAPI interface {
	AllUsers(ctx context.Context) ([]domain.Participant, error)
	History(ctx context.Context, me, peer domain.ParticipantID) ([]domain.Message, error)
}

// ISessionStore is the external key-value store holding the authenticated
// session. The engine side only reads it; binaries write it at login.
type ISessionStore interface {
	LoadToken() (string, error)
	LoadUser() (domain.Participant, error)
}
