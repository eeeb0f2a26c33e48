package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"duochat/connection"
	"duochat/domain"
	"duochat/engine"
	"duochat/errors"
	"duochat/internal"
	"duochat/rest"
	"duochat/session"
	"duochat/store"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "duochat error: %v\n", err)
	}
	os.Exit(code)
}

// run handles configuration loading, session bootstrap, and the interactive
// loop. This pattern ensures deferred cleanup executes before the process
// exits and keeps initialization testable.
func run() (int, error) {
	// 1. Load configuration from the environment (and optional .env).
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Session store and REST collaborators.
	sessions, err := session.Open(config.SessionDBPath, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = sessions.Close()
	}()

	api := rest.NewClient(config.ServerURL, sessions, log, config.RequestTimeout)

	input := bufio.NewReader(os.Stdin)
	sess, me, err := ensureSession(ctx, api, sessions, input)
	if err != nil {
		return exitRuntime, err
	}
	log.Info(fmt.Sprintf("Signed in as %s <%s>", me.DisplayName, me.Email))

	// 4. Channel, store, and engine wiring. One manager per session,
	// torn down explicitly on exit.
	dialer := connection.NewWebsocketDialer(config.SocketURL)
	backoff := connection.NewBackoff(config.BackoffBase, config.BackoffCap, connection.DefaultBackoffJitter)
	manager := connection.NewManager(dialer, log, backoff)
	defer manager.Teardown()

	eng := engine.New(log, manager, store.New(log), api, me)
	eng.OnChange(func(conv domain.Conversation) {
		renderConversation(os.Stdout, me.ID, conv)
	})

	if err := manager.Connect(ctx, sess.Token); err != nil {
		return exitRuntime, err
	}

	// 5. Directory listing, then the interactive command loop.
	users, err := directory(ctx, api, me)
	if err != nil {
		return exitRuntime, err
	}
	renderDirectory(os.Stdout, users)
	printHelp(os.Stdout)

	if err := commandLoop(ctx, eng, api, me, users, input); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

// ensureSession reuses a stored session when one is valid, otherwise walks
// the user through login or registration and persists the result.
func ensureSession(ctx context.Context, api *rest.Client, sessions *session.Store, input *bufio.Reader) (session.Context, domain.Participant, error) {
	token, err := sessions.LoadToken()
	if err == nil {
		if sess, perr := session.ParseContext(token); perr == nil && !sess.Expired(timeNow()) {
			if user, uerr := sessions.LoadUser(); uerr == nil {
				return sess, user, nil
			}
		}
	} else if !stderrors.Is(err, errors.ErrNoSession) {
		return session.Context{}, domain.Participant{}, err
	}

	choice := prompt(input, "login or register? [l/r]: ")
	email := prompt(input, "email: ")
	password := prompt(input, "password: ")

	var user domain.Participant
	if strings.HasPrefix(strings.ToLower(choice), "r") {
		name := prompt(input, "display name: ")
		token, user, err = api.Register(ctx, name, email, password)
	} else {
		token, user, err = api.Login(ctx, email, password)
	}
	if err != nil {
		return session.Context{}, domain.Participant{}, err
	}

	if err := sessions.SaveToken(token); err != nil {
		return session.Context{}, domain.Participant{}, err
	}
	if err := sessions.SaveUser(user); err != nil {
		return session.Context{}, domain.Participant{}, err
	}
	sess, err := session.ParseContext(token)
	if err != nil {
		return session.Context{}, domain.Participant{}, err
	}
	return sess, user, nil
}

func directory(ctx context.Context, api *rest.Client, me domain.Participant) ([]domain.Participant, error) {
	users, err := api.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	// The directory includes the local viewer; filtering self is ours.
	return lo.Filter(users, func(u domain.Participant, _ int) bool {
		return u.ID != me.ID
	}), nil
}

// commandLoop reads stdin commands until /quit or a termination signal.
func commandLoop(ctx context.Context, eng *engine.Engine, api *rest.Client, me domain.Participant, users []domain.Participant, input *bufio.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := input.ReadString('\n')
			if err != nil {
				return
			}
			lines <- strings.TrimSpace(line)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			quit, err := execute(ctx, eng, api, me, &users, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "! %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func execute(ctx context.Context, eng *engine.Engine, api *rest.Client, me domain.Participant, users *[]domain.Participant, line string) (bool, error) {
	switch {
	case line == "/quit":
		return true, nil

	case line == "/users":
		fresh, err := directory(ctx, api, me)
		if err != nil {
			return false, err
		}
		*users = fresh
		renderDirectory(os.Stdout, fresh)
		return false, nil

	case strings.HasPrefix(line, "/open "):
		peer, err := pickUser(*users, strings.TrimPrefix(line, "/open "))
		if err != nil {
			return false, err
		}
		return false, eng.OpenConversation(ctx, peer)

	case strings.HasPrefix(line, "/reply "):
		remainder := strings.TrimPrefix(line, "/reply ")
		idx, text, ok := strings.Cut(remainder, " ")
		if !ok {
			return false, fmt.Errorf("usage: /reply <n> <text>")
		}
		target, err := pickMessage(eng.Snapshot(), idx)
		if err != nil {
			return false, err
		}
		_, err = eng.Send(text, &target)
		return false, err

	case strings.HasPrefix(line, "/delete "):
		args := strings.Fields(strings.TrimPrefix(line, "/delete "))
		if len(args) == 0 {
			return false, fmt.Errorf("usage: /delete <n> [all]")
		}
		target, err := pickMessage(eng.Snapshot(), args[0])
		if err != nil {
			return false, err
		}
		forEveryone := len(args) > 1 && args[1] == "all"
		return false, eng.Retract(target, forEveryone)

	case strings.HasPrefix(line, "/"):
		printHelp(os.Stdout)
		return false, nil

	default:
		_, err := eng.Send(line, nil)
		return false, err
	}
}

func pickUser(users []domain.Participant, arg string) (domain.Participant, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(users) {
		return domain.Participant{}, fmt.Errorf("no such user %q, see /users", arg)
	}
	return users[n-1], nil
}

func pickMessage(conv domain.Conversation, arg string) (domain.Message, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(conv.Messages) {
		return domain.Message{}, fmt.Errorf("no such message %q", arg)
	}
	return conv.Messages[n-1], nil
}

func prompt(input *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := input.ReadString('\n')
	return strings.TrimSpace(line)
}
