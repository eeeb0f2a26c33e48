package rest

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"duochat/domain"
	"duochat/errors"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type fakeSessions struct {
	token string
	err   error
}

func (s *fakeSessions) LoadToken() (string, error) {
	return s.token, s.err
}

func (s *fakeSessions) LoadUser() (domain.Participant, error) {
	return domain.Participant{}, errors.ErrNoSession
}

// recordedRequest captures what the server saw for assertions.
type recordedRequest struct {
	method string
	path   string
	auth   string
	body   []byte
}

type testServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func (s *testServer) handle(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		method: string(ctx.Method()),
		path:   string(ctx.Path()),
		auth:   string(ctx.Request.Header.Peek("Authorization")),
		body:   append([]byte(nil), ctx.PostBody()...),
	})
	s.mu.Unlock()
	ctx.SetStatusCode(s.status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(s.response)
}

func (s *testServer) last(t *testing.T) recordedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests)
	return s.requests[len(s.requests)-1]
}

func newTestClient(t *testing.T, server *testServer) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: server.handle}
	go func() {
		_ = srv.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})

	c := NewClient("http://chat.test", &fakeSessions{token: "tok-123"}, slog.New(slog.DiscardHandler), time.Second)
	c.http = &fasthttp.Client{
		Dial: func(string) (net.Conn, error) {
			return ln.Dial()
		},
	}
	return c
}

func TestLogin_Returns_Token_And_Participant(t *testing.T) {
	req := require.New(t)
	server := &testServer{
		status:   fasthttp.StatusOK,
		response: `{"token": "tok-9", "user": {"_id": "u1", "name": "Uno", "email": "uno@chat.test"}}`,
	}
	client := newTestClient(t, server)

	token, user, err := client.Login(context.Background(), "uno@chat.test", "hunter22")

	req.NoError(err)
	req.Equal("tok-9", token)
	req.Equal(domain.ParticipantID("u1"), user.ID)
	req.Equal("Uno", user.DisplayName)

	seen := server.last(t)
	req.Equal(fasthttp.MethodPost, seen.method)
	req.Equal("/auth/login", seen.path)
	req.Empty(seen.auth) // auth bootstrap carries no bearer
	req.JSONEq(`{"email": "uno@chat.test", "password": "hunter22"}`, string(seen.body))
}

func TestLogin_Rejects_Invalid_Email_Without_A_Request(t *testing.T) {
	req := require.New(t)
	server := &testServer{status: fasthttp.StatusOK, response: `{}`}
	client := newTestClient(t, server)

	_, _, err := client.Login(context.Background(), "not-an-email", "hunter22")

	req.True(goerrors.Is(err, errors.ErrValidation))
	server.mu.Lock()
	defer server.mu.Unlock()
	req.Empty(server.requests)
}

func TestRegister_Enforces_Password_Length(t *testing.T) {
	req := require.New(t)
	server := &testServer{status: fasthttp.StatusOK, response: `{}`}
	client := newTestClient(t, server)

	_, _, err := client.Register(context.Background(), "Uno", "uno@chat.test", "short")

	req.True(goerrors.Is(err, errors.ErrValidation))
}

func TestAllUsers_Sends_The_Bearer_Token(t *testing.T) {
	req := require.New(t)
	server := &testServer{
		status: fasthttp.StatusOK,
		response: `[
			{"_id": "u1", "name": "Uno", "email": "uno@chat.test"},
			{"_id": "u2", "name": "Dos", "email": "dos@chat.test"}
		]`,
	}
	client := newTestClient(t, server)

	users, err := client.AllUsers(context.Background())

	req.NoError(err)
	req.Len(users, 2)
	req.Equal("Bearer tok-123", server.last(t).auth)
}

func TestHistory_Resolves_Deletion_State_For_The_Viewer(t *testing.T) {
	req := require.New(t)
	server := &testServer{
		status: fasthttp.StatusOK,
		response: `[
			{"_id": "m1", "sender": "u2", "receiver": "u1", "text": "hello", "status": "seen"},
			{"_id": "m2", "sender": "u1", "receiver": "u2", "text": "gone", "status": "seen", "deletedForEveryone": true},
			{"_id": "m3", "sender": "u2", "receiver": "u1", "text": "hidden here", "status": "seen", "deletedFor": ["u1"]},
			{"_id": "m4", "sender": "u2", "receiver": "u1", "text": "hidden there", "status": "seen", "deletedFor": ["u2"]}
		]`,
	}
	client := newTestClient(t, server)

	messages, err := client.History(context.Background(), "u1", "u2")

	req.NoError(err)
	req.Len(messages, 4)
	req.Equal("/messages/u1/u2", server.last(t).path)

	req.Equal(domain.ViewVisible, messages[0].Deletion)

	// Retracted for everyone: tombstoned with the text stripped
	req.Equal(domain.ViewTombstoned, messages[1].Deletion)
	req.Empty(messages[1].Text)

	// Retracted for this viewer only
	req.Equal(domain.ViewHiddenForViewer, messages[2].Deletion)

	// Retracted for the other participant: fully visible here
	req.Equal(domain.ViewVisible, messages[3].Deletion)
	req.Equal("hidden there", messages[3].Text)
}

func TestHistory_Maps_Reply_Snapshots_And_Status(t *testing.T) {
	req := require.New(t)
	server := &testServer{
		status: fasthttp.StatusOK,
		response: `[
			{"_id": "m1", "sender": "u2", "receiver": "u1", "text": "sure",
			 "replyTo": {"sender": "u1", "text": "lunch?"}, "status": "delivered"}
		]`,
	}
	client := newTestClient(t, server)

	messages, err := client.History(context.Background(), "u1", "u2")

	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(domain.StatusDelivered, messages[0].Status)
	req.NotNil(messages[0].ReplyTo)
	req.Equal(domain.ParticipantID("u1"), messages[0].ReplyTo.Sender)
	req.Equal("lunch?", messages[0].ReplyTo.Text)
}

func TestNon2xx_Responses_Surface_As_Fetch_Errors(t *testing.T) {
	req := require.New(t)
	server := &testServer{status: fasthttp.StatusUnauthorized, response: `{"error": "expired"}`}
	client := newTestClient(t, server)

	_, err := client.AllUsers(context.Background())

	req.True(goerrors.Is(err, errors.ErrFetch))
	req.ErrorContains(err, "401")
}

func TestMissing_Session_Token_Fails_Before_The_Request(t *testing.T) {
	req := require.New(t)
	server := &testServer{status: fasthttp.StatusOK, response: `[]`}
	client := newTestClient(t, server)
	client.sessions = &fakeSessions{err: errors.ErrNoSession}

	_, err := client.AllUsers(context.Background())

	req.True(goerrors.Is(err, errors.ErrFetch))
	server.mu.Lock()
	defer server.mu.Unlock()
	req.Empty(server.requests)
}

func TestUpdateProfile_Puts_The_New_Identity(t *testing.T) {
	req := require.New(t)
	server := &testServer{status: fasthttp.StatusOK, response: `{}`}
	client := newTestClient(t, server)

	err := client.UpdateProfile(context.Background(), domain.Participant{
		ID:          "u1",
		DisplayName: "Uno Renamed",
		Email:       "uno@chat.test",
	})

	req.NoError(err)
	seen := server.last(t)
	req.Equal(fasthttp.MethodPut, seen.method)
	req.Equal("/users/update-profile", seen.path)
	req.JSONEq(`{"name": "Uno Renamed", "email": "uno@chat.test"}`, string(seen.body))
}
