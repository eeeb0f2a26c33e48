// Package engine orchestrates the client-side message synchronization: it
// owns the active conversation pointer, seeds conversations from the
// authoritative history fetch, wires channel events into store mutations,
// and implements optimistic send, retraction, and reply threading.
package engine

import (
	"context"
	"duochat/contract"
	"duochat/domain"
	"duochat/domain/event"
	"duochat/errors"
	"duochat/store"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine is the sole mutator of the message store and of the channel
// subscriptions. Its mutex is the single control thread of the client:
// every inbound handler and every history fetch re-enters through it.
type Engine struct {
	mu         sync.Mutex
	log        *slog.Logger
	conn       contract.IConnection
	store      *store.MessageStore
	api        contract.IChatAPI
	me         domain.Participant
	activeRoom domain.RoomKey
	activePeer domain.Participant
	// fence is a monotonic counter capturing which history fetch is still
	// authoritative. A fetch that resolves after the user switched
	// conversations observes a newer fence and discards its result.
	fence    uint64
	onChange []func(domain.Conversation)
}

func New(log *slog.Logger, conn contract.IConnection, messages *store.MessageStore, api contract.IChatAPI, me domain.Participant) *Engine {
	e := &Engine{
		log:   log,
		conn:  conn,
		store: messages,
		api:   api,
		me:    me,
	}
	conn.Subscribe(event.NameNewMessage, e.handleNewMessage)
	conn.Subscribe(event.NameMessageDeleted, e.handleMessageDeleted)
	conn.Subscribe(event.NameMessageStatus, e.handleMessageStatus)
	conn.OnConnected(e.announcePresence)
	return e
}

// OnChange registers a presentation hook invoked with the active
// conversation snapshot after every visible mutation.
func (e *Engine) OnChange(hook func(domain.Conversation)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, hook)
}

// Me returns the authenticated participant.
func (e *Engine) Me() domain.Participant {
	return e.me
}

// ActiveRoom returns the current conversation key, empty when none is open.
func (e *Engine) ActiveRoom() domain.RoomKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeRoom
}

// Snapshot returns the active conversation for rendering.
func (e *Engine) Snapshot() domain.Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshot(e.activeRoom)
}

// OpenConversation switches to the peer's room, joins it on the channel,
// and seeds the store from the authoritative history fetch. If the user
// switched again while the fetch was in flight the result is discarded:
// stale-fetch discard is expected control flow, not an error.
func (e *Engine) OpenConversation(ctx context.Context, peer domain.Participant) error {
	e.mu.Lock()
	room := domain.DeriveKey(e.me.ID, peer.ID)
	e.activeRoom = room
	e.activePeer = peer
	e.fence++
	fence := e.fence
	e.mu.Unlock()

	if err := e.conn.Publish(event.JoinRoom{UserID1: string(e.me.ID), UserID2: string(peer.ID)}); err != nil {
		e.log.Warn(fmt.Sprintf("joinRoom not published for %s: %v", room, err))
	}

	history, err := e.api.History(ctx, e.me.ID, peer.ID)

	e.mu.Lock()
	if fence != e.fence {
		e.mu.Unlock()
		e.log.Debug(fmt.Sprintf("Discarding stale history fetch for %s", room))
		return nil
	}
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: history for %s: %v", errors.ErrFetch, room, err)
	}
	conv := e.store.ReplaceConversation(room, peer.ID, history)
	e.mu.Unlock()

	if err := e.conn.Publish(event.MarkAsSeen{Sender: string(peer.ID), Receiver: string(e.me.ID)}); err != nil {
		e.log.Warn(fmt.Sprintf("markAsSeen not published for %s: %v", room, err))
	}
	e.notify(conv)
	return nil
}

// Send performs the optimistic send: the provisional message is appended
// locally before the publish, so the UI renders it immediately. The server
// echo reconciles it through the idempotency key. A publish failure leaves
// the optimistic copy visible with its status stuck at sent.
func (e *Engine) Send(text string, replyTarget *domain.Message) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, errors.ErrEmptyMessage
	}

	e.mu.Lock()
	if e.activeRoom == "" {
		e.mu.Unlock()
		return domain.Message{}, errors.ErrNoOpenConversation
	}
	room := e.activeRoom
	peer := e.activePeer

	msg := domain.Message{
		ID:          domain.MessageID("local-" + uuid.NewString()),
		ClientKey:   uuid.NewString(),
		Provisional: true,
		Sender:      e.me.ID,
		Receiver:    peer.ID,
		Text:        text,
		CreatedAt:   time.Now().UTC(),
		Status:      domain.StatusSent,
	}
	if replyTarget != nil {
		snapshot := replyTarget.Snapshot()
		msg.ReplyTo = &snapshot
	}
	conv := e.store.Append(room, msg)
	e.mu.Unlock()

	e.notify(conv)

	out := event.PrivateMessage{
		Sender:    string(msg.Sender),
		Receiver:  string(msg.Receiver),
		Text:      msg.Text,
		ClientKey: msg.ClientKey,
	}
	if msg.ReplyTo != nil {
		out.ReplyTo = &event.Reply{Sender: string(msg.ReplyTo.Sender), Text: msg.ReplyTo.Text}
	}
	if err := e.conn.Publish(out); err != nil {
		e.log.Warn(fmt.Sprintf("privateMessage not published, optimistic copy stays at %s: %v", msg.Status, err))
	}
	return msg, nil
}

// Retract publishes a deleteMessage request. Local state is not mutated
// preemptively: the server-echoed messageDeleted flows through the same
// idempotent path as retractions originated by the other participant.
func (e *Engine) Retract(msg domain.Message, forEveryone bool) error {
	if forEveryone && msg.Sender != e.me.ID {
		return errors.ErrNotSender
	}
	return e.conn.Publish(event.DeleteMessage{
		MessageID:   string(msg.ID),
		UserID:      string(e.me.ID),
		ForEveryone: forEveryone,
	})
}

// handleNewMessage reconciles an inbound message into the active
// conversation. Events for other rooms are dropped: background-conversation
// accumulation is a non-goal, switching back re-seeds from history.
func (e *Engine) handleNewMessage(payload json.RawMessage) {
	ev, err := event.DecodeNewMessage(payload)
	if err != nil {
		e.log.Warn(err.Error())
		return
	}

	e.mu.Lock()
	room := ev.Room()
	if room != e.activeRoom {
		e.mu.Unlock()
		e.log.Debug(fmt.Sprintf("Dropping newMessage for inactive room %s", room))
		return
	}
	conv := e.store.ReconcileProvisional(room, e.toMessage(ev))
	e.mu.Unlock()

	e.notify(conv)
}

// handleMessageDeleted applies a retraction against the event's room even
// when it is not active, so switching back later shows the correct state.
func (e *Engine) handleMessageDeleted(payload json.RawMessage) {
	ev, err := event.DecodeMessageDeleted(payload)
	if err != nil {
		e.log.Warn(err.Error())
		return
	}

	e.mu.Lock()
	room := ev.Room()
	conv := e.store.ApplyRetraction(room, domain.MessageID(ev.MessageID), ev.ForEveryone,
		domain.ParticipantID(ev.UserID), e.me.ID)
	active := room == e.activeRoom
	e.mu.Unlock()

	if active {
		e.notify(conv)
	}
}

// handleMessageStatus advances the delivery lattice; regressions are
// rejected by the store.
func (e *Engine) handleMessageStatus(payload json.RawMessage) {
	ev, err := event.DecodeMessageStatus(payload)
	if err != nil {
		e.log.Warn(err.Error())
		return
	}
	status, err := domain.ParseStatus(ev.Status)
	if err != nil {
		e.log.Warn(fmt.Sprintf("%v: %s", errors.ErrMalformedEvent, err))
		return
	}

	e.mu.Lock()
	room := ev.Room()
	conv := e.store.AdvanceStatus(room, domain.MessageID(ev.MessageID), status)
	active := room == e.activeRoom
	e.mu.Unlock()

	if active {
		e.notify(conv)
	}
}

// announcePresence runs on every successful connect and reconnect: the
// server needs the presence announcement to route pushes, and an open
// conversation must be re-joined on the fresh channel.
func (e *Engine) announcePresence() {
	if err := e.conn.Publish(event.UserConnected{ParticipantID: string(e.me.ID)}); err != nil {
		e.log.Warn(fmt.Sprintf("userConnected not published: %v", err))
	}

	e.mu.Lock()
	room := e.activeRoom
	peer := e.activePeer
	e.mu.Unlock()

	if room == "" {
		return
	}
	if err := e.conn.Publish(event.JoinRoom{UserID1: string(e.me.ID), UserID2: string(peer.ID)}); err != nil {
		e.log.Warn(fmt.Sprintf("joinRoom not re-published for %s: %v", room, err))
	}
}

func (e *Engine) toMessage(ev event.NewMessage) domain.Message {
	status, err := domain.ParseStatus(ev.Status)
	if err != nil {
		e.log.Debug(fmt.Sprintf("Defaulting status for message %s: %v", ev.ID, err))
		status = domain.StatusSent
	}
	msg := domain.Message{
		ID:        domain.MessageID(ev.ID),
		ClientKey: ev.ClientKey,
		Sender:    domain.ParticipantID(ev.Sender),
		Receiver:  domain.ParticipantID(ev.Receiver),
		Text:      ev.Text,
		CreatedAt: ev.CreatedAt,
		Status:    status,
	}
	if ev.ReplyTo != nil {
		msg.ReplyTo = &domain.ReplySnapshot{
			Sender: domain.ParticipantID(ev.ReplyTo.Sender),
			Text:   ev.ReplyTo.Text,
		}
	}
	return msg
}

func (e *Engine) notify(conv domain.Conversation) {
	e.mu.Lock()
	hooks := append([]func(domain.Conversation){}, e.onChange...)
	e.mu.Unlock()
	for _, hook := range hooks {
		hook(conv)
	}
}
