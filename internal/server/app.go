// Package server initializes and runs the blog application server.
// It opens the database, runs migrations, wires services to their
// collaborators and starts the HTTP server with graceful shutdown.
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

	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/config"
	"github.com/bloggyhq/bloggy/internal/server/httpapi"
	"github.com/bloggyhq/bloggy/internal/server/mail"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
	"github.com/bloggyhq/bloggy/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := services.NewS3ObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	us := services.NewUserService(db, rm, cfg, mailer, logger)
	ps := services.NewPostService(db, rm, logger)
	cs := services.NewCommentService(db, rm, logger)
	is := services.NewImageService(db, rm, store, cfg.MaxUploadBytes, logger)

	srv := httpapi.NewHTTPServer(cfg.Addr, logger, us, ps, cs, is)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
