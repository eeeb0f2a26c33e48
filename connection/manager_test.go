package connection

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"duochat/contract"
	"duochat/domain/event"
	"duochat/errors"

	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu      sync.Mutex
	inbound chan contract.Frame
	written []contract.Frame
	once    sync.Once
	closed  bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{inbound: make(chan contract.Frame, 8)}
}

func (c *fakeChannel) ReadFrame() (contract.Frame, error) {
	frame, ok := <-c.inbound
	if !ok {
		return contract.Frame{}, io.EOF
	}
	return frame, nil
}

func (c *fakeChannel) WriteFrame(frame contract.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, frame)
	return nil
}

func (c *fakeChannel) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.inbound)
	})
	return nil
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeChannel) frames() []contract.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]contract.Frame(nil), c.written...)
}

type fakeDialer struct {
	mu       sync.Mutex
	channels []*fakeChannel
	failures int
	dials    int
}

func (d *fakeDialer) Dial(_ context.Context, _ string) (contract.RawChannel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if d.failures > 0 {
		d.failures--
		return nil, io.ErrUnexpectedEOF
	}
	ch := newFakeChannel()
	d.channels = append(d.channels, ch)
	return ch, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) channel(i int) *fakeChannel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.channels[i]
}

func newTestManager(dialer *fakeDialer) *Manager {
	backoff := NewBackoff(time.Millisecond, 10*time.Millisecond, 0)
	return NewManager(dialer, slog.New(slog.DiscardHandler), backoff)
}

func TestConnect_Transitions_To_Connected_And_Fires_Hooks(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()

	var announced int
	m.OnConnected(func() { announced++ })

	req.Equal(StateDisconnected, m.State())

	// When the session connects
	err := m.Connect(context.Background(), "token")

	req.NoError(err)
	req.Equal(StateConnected, m.State())
	req.Equal(1, announced)
}

func TestConnect_Is_Idempotent_Per_Session(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()

	req.NoError(m.Connect(context.Background(), "token"))
	first := dialer.channel(0)

	// Connecting again while a handle is live replaces it
	req.NoError(m.Connect(context.Background(), "token"))

	req.True(first.isClosed())
	req.Equal(2, dialer.dialCount())
	req.Equal(StateConnected, m.State())
}

func TestConnect_Dial_Failure(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{failures: 1}
	m := newTestManager(dialer)
	defer m.Teardown()

	err := m.Connect(context.Background(), "token")

	req.True(goerrors.Is(err, errors.ErrConnection))
	req.Equal(StateDisconnected, m.State())
}

func TestPublish_While_Disconnected_Drops(t *testing.T) {
	req := require.New(t)
	m := newTestManager(&fakeDialer{})
	defer m.Teardown()

	// Dropped with a surfaced warning: the optimistic copy stays local
	err := m.Publish(event.UserConnected{ParticipantID: "u1"})

	req.True(goerrors.Is(err, errors.ErrNotConnected))
	req.True(goerrors.Is(err, errors.ErrConnection))
}

func TestPublish_Writes_The_Tagged_Frame(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()
	req.NoError(m.Connect(context.Background(), "token"))

	err := m.Publish(event.JoinRoom{UserID1: "u1", UserID2: "u2"})

	req.NoError(err)
	frames := dialer.channel(0).frames()
	req.Len(frames, 1)
	req.Equal("joinRoom", frames[0].Event)
	req.JSONEq(`{"userId1": "u1", "userId2": "u2"}`, string(frames[0].Payload))
}

func TestSubscribe_Handlers_Run_In_Registration_Order(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()

	var mu sync.Mutex
	var order []string
	m.Subscribe("newMessage", func(_ json.RawMessage) {
		mu.Lock()
		order = append(order, "first")
		mu.Unlock()
	})
	m.Subscribe("newMessage", func(_ json.RawMessage) {
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
	})

	req.NoError(m.Connect(context.Background(), "token"))
	dialer.channel(0).inbound <- contract.Frame{Event: "newMessage", Payload: []byte(`{}`)}

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	req.Equal([]string{"first", "second"}, order)
}

func TestReconnect_After_Unexpected_Disconnect(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()

	var mu sync.Mutex
	var announced int
	m.OnConnected(func() {
		mu.Lock()
		announced++
		mu.Unlock()
	})

	req.NoError(m.Connect(context.Background(), "token"))

	// When the channel drops unexpectedly
	dialer.channel(0).Close()

	// Then the manager redials and re-fires the connected hooks
	req.Eventually(func() bool {
		return m.State() == StateConnected && dialer.dialCount() == 2
	}, time.Second, time.Millisecond)

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return announced == 2
	}, time.Second, time.Millisecond)
}

func TestReconnect_Keeps_Retrying_Through_Failures(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)
	defer m.Teardown()

	req.NoError(m.Connect(context.Background(), "token"))
	dialer.mu.Lock()
	dialer.failures = 2
	dialer.mu.Unlock()

	dialer.channel(0).Close()

	req.Eventually(func() bool {
		return m.State() == StateConnected && dialer.dialCount() == 4
	}, time.Second, time.Millisecond)
}

func TestTeardown_Silences_All_Callbacks(t *testing.T) {
	req := require.New(t)
	dialer := &fakeDialer{}
	m := newTestManager(dialer)

	var mu sync.Mutex
	var calls int
	m.Subscribe("newMessage", func(_ json.RawMessage) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	req.NoError(m.Connect(context.Background(), "token"))
	ch := dialer.channel(0)

	m.Teardown()
	req.Equal(StateDisconnected, m.State())
	req.True(ch.isClosed())

	// No reconnect attempt and no handler invocation after teardown
	time.Sleep(50 * time.Millisecond)
	req.Equal(1, dialer.dialCount())
	mu.Lock()
	defer mu.Unlock()
	req.Zero(calls)

	// Teardown twice is safe
	m.Teardown()
}
