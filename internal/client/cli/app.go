// Package cli is the interactive terminal frontend: a REPL over the session
// store and chat controller.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/haidang99/oceanchat/internal/client/ai"
	"github.com/haidang99/oceanchat/internal/client/api"
	"github.com/haidang99/oceanchat/internal/client/chat"
	"github.com/haidang99/oceanchat/internal/client/config"
	"github.com/haidang99/oceanchat/internal/client/session"
	"github.com/haidang99/oceanchat/internal/client/store"
	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config  *config.Config
	api     api.API
	session *session.Store
	msgs    *chat.Store
	notifs  *chat.Notifications
	chat    *chat.Controller
	logger  logging.Logger
	reader  *bufio.Reader
	Mode    Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	repos, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)

	sess := session.NewStore(apiClient, repos.Metadata, logger)
	msgs := chat.NewStore(apiClient, repos.Messages, logger)
	notifs := chat.NewNotifications()
	responder := ai.NewGeminiResponder(ctx)

	return &App{
		config:  c,
		api:     apiClient,
		session: sess,
		msgs:    msgs,
		notifs:  notifs,
		chat:    chat.NewController(msgs, sess, notifs, responder, logger),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		Mode:    ModeOnline,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) syncMode() {
	if a.msgs.Offline() {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

// restoreSession revalidates a previously cached login, if any.
func (a *App) restoreSession(ctx context.Context) {
	if err := a.session.LoadCached(ctx); err != nil {
		a.logger.Warn(ctx, "failed to load cached session", "error", err.Error())
		return
	}
	if a.session.Current() == nil {
		return
	}

	err := a.session.Verify(ctx)
	switch {
	case err == nil:
		printlnFn("Welcome back, " + a.session.Current().Username + "!")
	case errors.Is(err, common.ErrSessionExpired):
		printlnFn("Your session has expired, please log in again.")
	case errors.Is(err, api.ErrUnavailable):
		a.setMode(ModeOffline)
		printlnFn("Server unreachable, continuing offline as " + a.session.Current().Username + ".")
	default:
		a.logger.Warn(ctx, "session check failed", "error", err.Error())
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.restoreSession(ctx)

	if err := a.chat.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "initial refresh failed", "error", err.Error())
	}
	a.syncMode()

	a.chat.StartPolling(ctx, a.config.PollInterval)

	printlnFn("OceanChat CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	a.chat.Wait()
	a.session.Wait()
}

func (a *App) status() string {
	user := a.session.Current()
	if user == nil {
		return "not logged in"
	}
	s := user.Username
	if a.msgs.Offline() {
		s += " (offline)"
	}
	if unread := a.notifs.Unread(); unread > 0 {
		s += fmt.Sprintf(" [%d unread]", unread)
	}
	return s
}
