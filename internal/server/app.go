// Package server initializes and runs the chat backend: it opens the
// database, applies migrations, wires the services and starts the HTTP
// endpoint with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/haidang99/oceanchat/internal/logging"
	"github.com/haidang99/oceanchat/internal/server/avatars"
	"github.com/haidang99/oceanchat/internal/server/config"
	"github.com/haidang99/oceanchat/internal/server/httpapi"
	"github.com/haidang99/oceanchat/internal/server/messages"
	"github.com/haidang99/oceanchat/internal/server/migrations"
	"github.com/haidang99/oceanchat/internal/server/users"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *users.Service
	messageService *messages.Service
	avatarService  *avatars.Service
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, ".")
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, err
	}
	messageRepo, err := messages.NewPostgresRepository(db)
	if err != nil {
		return nil, err
	}

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		userService:    users.NewService(userRepo, cfg),
		messageService: messages.NewService(messageRepo, logger),
		avatarService:  avatars.NewService(cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handlers := httpapi.NewHandlers(app.userService, app.messageService, app.avatarService, app.logger)
	s := httpapi.NewServer(app.config.EndpointAddr, httpapi.NewRouter(handlers), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err.Error())
	}
}
