// Package rest talks to the messaging product's HTTP collaborators: auth
// bootstrap, the user directory, the authoritative message history, and
// profile updates. Authorized calls carry the bearer token read from the
// session store.
package rest

import (
	"context"
	"duochat/contract"
	"duochat/domain"
	"duochat/errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/valyala/fasthttp"
)

const defaultRequestTimeout = 10 * time.Second

var validate = validator.New()

type Client struct {
	http     *fasthttp.Client
	baseURL  string
	log      *slog.Logger
	sessions contract.ISessionStore
	timeout  time.Duration
}

func NewClient(baseURL string, sessions contract.ISessionStore, log *slog.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		http:     &fasthttp.Client{},
		baseURL:  baseURL,
		log:      log,
		sessions: sessions,
		timeout:  timeout,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type profileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// Login exchanges credentials for a session token and the authenticated
// participant. The binary persists both in the session store afterwards.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.Participant, error) {
	req := loginRequest{Email: email, Password: password}
	if err := validate.Struct(req); err != nil {
		return "", domain.Participant{}, fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	var resp authResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return "", domain.Participant{}, err
	}
	return resp.Token, toParticipant(resp.User), nil
}

// Register creates an account and bootstraps the session like Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, domain.Participant, error) {
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := validate.Struct(req); err != nil {
		return "", domain.Participant{}, fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	var resp authResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return "", domain.Participant{}, err
	}
	return resp.Token, toParticipant(resp.User), nil
}

// AllUsers lists the directory. The response includes the local viewer;
// filtering self out is the caller's job.
func (c *Client) AllUsers(ctx context.Context) ([]domain.Participant, error) {
	var users []userDTO
	if err := c.do(ctx, fasthttp.MethodGet, "/users/all", nil, &users, true); err != nil {
		return nil, err
	}
	return lo.Map(users, func(u userDTO, _ int) domain.Participant {
		return toParticipant(u)
	}), nil
}

// History is the authoritative fetch for one conversation, ordered by the
// server. Per-viewer deletion state is durable server state and resolved
// here against the local viewer id.
func (c *Client) History(ctx context.Context, me, peer domain.ParticipantID) ([]domain.Message, error) {
	path := fmt.Sprintf("/messages/%s/%s", me, peer)
	var messages []messageDTO
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &messages, true); err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m messageDTO, _ int) domain.Message {
		return toMessage(m, me)
	}), nil
}

// UpdateProfile pushes display name and email changes.
func (c *Client) UpdateProfile(ctx context.Context, p domain.Participant) error {
	req := profileRequest{Name: p.DisplayName, Email: p.Email}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return c.do(ctx, fasthttp.MethodPut, "/users/update-profile", req, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authorized bool) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.SetBody(raw)
	}
	if authorized {
		token, err := c.sessions.LoadToken()
		if err != nil {
			return fmt.Errorf("%w: %s %s: %v", errors.ErrFetch, method, path, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%w: %s %s: %v", errors.ErrFetch, method, path, err)
	}
	if code := resp.StatusCode(); code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s: status %d", errors.ErrFetch, method, path, code)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("%w: %s %s: decode: %v", errors.ErrFetch, method, path, err)
		}
	}
	return nil
}
