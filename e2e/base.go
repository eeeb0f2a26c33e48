package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"duochat/connection"
	"duochat/domain"
	"duochat/engine"
	"duochat/rest"
	"duochat/session"
	"duochat/store"
)

// BaseSuite wires a complete client against a running messaging server.
// Suites are skipped entirely when CHAT_API_ADDR is unset.
type BaseSuite struct {
	suite.Suite
	Config Config
}

func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.APIAddr == "" || s.Config.SocketAddr == "" {
		s.T().Skip("CHAT_API_ADDR / CHAT_SOCKET_ADDR not set, skipping end to end suite")
	}
}

// Step prints a colorized header so the scenario reads as a script in logs.
func (s *BaseSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// ClientFor registers a throwaway account and brings up the full stack for
// it: in-memory session, REST client, channel manager, and engine.
type Client struct {
	User     domain.Participant
	API      *rest.Client
	Manager  *connection.Manager
	Engine   *engine.Engine
	sessions *session.Store
}

func (s *BaseSuite) ClientFor(ctx context.Context, name string) *Client {
	log := slog.Default()

	sessions, err := session.OpenInMemory(log)
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = sessions.Close()
	})

	api := rest.NewClient(s.Config.APIAddr, sessions, log, 10*time.Second)
	email := fmt.Sprintf("%s-%d@e2e.chat.test", name, time.Now().UnixNano())
	token, user, err := api.Register(ctx, name, email, "e2e-password-1")
	s.Require().NoError(err)
	s.Require().NoError(sessions.SaveToken(token))
	s.Require().NoError(sessions.SaveUser(user))

	manager := connection.NewManager(connection.NewWebsocketDialer(s.Config.SocketAddr), log, nil)
	messages := store.New(log)
	eng := engine.New(log, manager, messages, api, user)

	s.Require().NoError(manager.Connect(ctx, token))
	s.T().Cleanup(manager.Teardown)

	return &Client{User: user, API: api, Manager: manager, Engine: eng, sessions: sessions}
}

// WaitFor polls the client's active conversation until the predicate holds.
func (s *BaseSuite) WaitFor(c *Client, within time.Duration, predicate func(domain.Conversation) bool) {
	s.Require().Eventually(func() bool {
		return predicate(c.Engine.Snapshot())
	}, within, 100*time.Millisecond)
}
