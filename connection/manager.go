// Package connection owns the single authenticated bidirectional channel of
// a session: lifecycle state, a typed publish/subscribe surface, and the
// reconnection policy. No business logic lives here.
package connection

import (
	"context"
	"duochat/contract"
	"duochat/domain/event"
	"duochat/errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle of the managed channel.
// disconnected -> connecting -> connected -> {closing, reconnecting}.
// Terminal only on explicit teardown.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosing
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	case StateReconnecting:
		return "reconnecting"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Manager maintains exactly one channel per session. Connecting again while
// a channel is live closes the prior one first, so dependency churn in the
// caller can never leak duplicate channels.
type Manager struct {
	mu          sync.Mutex
	log         *slog.Logger
	dialer      contract.Dialer
	backoff     *Backoff
	state       State
	channel     contract.RawChannel
	generation  int
	token       string
	torn        bool
	done        chan struct{}
	handlers    map[string][]contract.EventHandler
	onConnected []func()
}

func NewManager(dialer contract.Dialer, log *slog.Logger, backoff *Backoff) *Manager {
	if backoff == nil {
		backoff = NewBackoff(DefaultBackoffBase, DefaultBackoffCap, DefaultBackoffJitter)
	}
	return &Manager{
		log:      log,
		dialer:   dialer,
		backoff:  backoff,
		done:     make(chan struct{}),
		handlers: make(map[string][]contract.EventHandler),
	}
}

// Connect establishes the authenticated channel. Idempotent per session: a
// live channel is closed and replaced. Connected hooks run synchronously
// before Connect returns.
func (m *Manager) Connect(ctx context.Context, token string) error {
	m.mu.Lock()
	if m.torn {
		m.mu.Unlock()
		return errors.ErrTornDown
	}
	if m.channel != nil {
		m.log.Info("Replacing live channel before reconnecting")
		_ = m.channel.Close()
		m.channel = nil
	}
	m.generation++
	gen := m.generation
	m.state = StateConnecting
	m.token = token
	m.mu.Unlock()

	ch, err := m.dialer.Dial(ctx, token)

	m.mu.Lock()
	if m.torn || m.generation != gen {
		m.mu.Unlock()
		if ch != nil {
			_ = ch.Close()
		}
		return errors.ErrTornDown
	}
	if err != nil {
		m.state = StateDisconnected
		m.mu.Unlock()
		return fmt.Errorf("%w: dial: %v", errors.ErrConnection, err)
	}
	m.channel = ch
	m.state = StateConnected
	hooks := append([]func(){}, m.onConnected...)
	m.mu.Unlock()

	m.backoff.Reset()
	go m.readLoop(ch, gen)
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// Publish emits an outbound event. When the channel is not connected the
// event is dropped with a surfaced warning: message send already keeps an
// optimistic local copy and a higher-level retry is out of scope.
func (m *Manager) Publish(out event.Outbound) error {
	m.mu.Lock()
	if m.state != StateConnected || m.channel == nil {
		m.mu.Unlock()
		m.log.Warn(fmt.Sprintf("Dropping %s: channel not connected", out.EventName()))
		return errors.ErrNotConnected
	}
	ch := m.channel
	m.mu.Unlock()

	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if err := ch.WriteFrame(contract.Frame{Event: out.EventName(), Payload: payload}); err != nil {
		return fmt.Errorf("%w: publish %s: %v", errors.ErrConnection, out.EventName(), err)
	}
	return nil
}

// Subscribe registers a handler for an event name. Multiple handlers per
// name are allowed and run in registration order, synchronously with
// respect to each other.
func (m *Manager) Subscribe(name string, handler contract.EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[name] = append(m.handlers[name], handler)
}

// OnConnected registers a hook fired after every successful connect and
// reconnect, so the session can re-announce presence and re-join its room.
func (m *Manager) OnConnected(hook func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = append(m.onConnected, hook)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Teardown releases the channel and transitions to disconnected.
// No further callbacks fire afterward.
func (m *Manager) Teardown() {
	m.mu.Lock()
	if m.torn {
		m.mu.Unlock()
		return
	}
	m.torn = true
	m.state = StateClosing
	ch := m.channel
	m.channel = nil
	m.mu.Unlock()

	close(m.done)
	if ch != nil {
		_ = ch.Close()
	}

	m.mu.Lock()
	m.state = StateDisconnected
	m.mu.Unlock()
}

// readLoop pumps inbound frames into subscribed handlers until the channel
// fails or is superseded. gen ties the loop to the channel it was started
// for; a replaced channel's loop exits without side effects.
func (m *Manager) readLoop(ch contract.RawChannel, gen int) {
	for {
		frame, err := ch.ReadFrame()
		if err != nil {
			m.mu.Lock()
			stale := m.torn || m.generation != gen
			if !stale {
				m.state = StateReconnecting
				m.channel = nil
			}
			m.mu.Unlock()

			_ = ch.Close()
			if !stale {
				m.log.Warn(fmt.Sprintf("Channel lost: %v", err))
				m.reconnect(gen)
			}
			return
		}
		m.dispatch(frame, gen)
	}
}

func (m *Manager) dispatch(frame contract.Frame, gen int) {
	m.mu.Lock()
	if m.torn || m.generation != gen {
		m.mu.Unlock()
		return
	}
	handlers := append([]contract.EventHandler(nil), m.handlers[frame.Event]...)
	m.mu.Unlock()

	if len(handlers) == 0 {
		m.log.Debug(fmt.Sprintf("No handler for event %s, ignoring", frame.Event))
		return
	}
	for _, handler := range handlers {
		handler(frame.Payload)
	}
}

// reconnect redials with exponential backoff until it succeeds, the
// manager is torn down, or an explicit Connect supersedes it.
func (m *Manager) reconnect(prevGen int) {
	for {
		m.mu.Lock()
		if m.torn || m.generation != prevGen {
			m.mu.Unlock()
			return
		}
		token := m.token
		m.mu.Unlock()

		delay := m.backoff.Next()
		m.log.Info(fmt.Sprintf("Reconnecting in %s", delay.Round(time.Millisecond)))
		select {
		case <-m.done:
			return
		case <-time.After(delay):
		}

		ch, err := m.dialer.Dial(context.Background(), token)
		if err != nil {
			m.log.Warn(fmt.Sprintf("Reconnect failed: %v", err))
			continue
		}

		m.mu.Lock()
		if m.torn || m.generation != prevGen {
			m.mu.Unlock()
			_ = ch.Close()
			return
		}
		m.generation++
		gen := m.generation
		m.channel = ch
		m.state = StateConnected
		hooks := append([]func(){}, m.onConnected...)
		m.mu.Unlock()

		m.backoff.Reset()
		go m.readLoop(ch, gen)
		for _, hook := range hooks {
			hook()
		}
		return
	}
}
