package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ali-mahmoud24/bookly-api/internal/api"
	apimiddleware "github.com/ali-mahmoud24/bookly-api/internal/api/middleware"
	"github.com/ali-mahmoud24/bookly-api/internal/config"
	"github.com/ali-mahmoud24/bookly-api/internal/platform/logger"
	"github.com/ali-mahmoud24/bookly-api/internal/platform/postgres"
	"github.com/ali-mahmoud24/bookly-api/internal/service/auth"
	"github.com/ali-mahmoud24/bookly-api/internal/service/lending"
	"github.com/ali-mahmoud24/bookly-api/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// application holds the fully wired dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	authorStore store.AuthorStore
	bookStore   store.BookStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptVerifier
	lendingService lending.Service

	authHandler    *api.AuthHandler
	userHandler    *api.UserHandler
	authorHandler  *api.AuthorHandler
	bookHandler    *api.BookHandler
	authMiddleware *apimiddleware.AuthMiddleware
}

// newApplication loads configuration, connects to the database and
// constructs every service and handler the router needs.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewUserStore(db)
	authorStore := postgres.NewAuthorStore(db)
	bookStore := postgres.NewBookStore(db)

	tokenLifetime := time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute
	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptVerifier()

	lendingService, err := lending.NewService(db, userStore, bookStore, authorStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create lending service: %w", err)
	}

	app := &application{
		config:         cfg,
		logger:         log,
		db:             db,
		userStore:      userStore,
		authorStore:    authorStore,
		bookStore:      bookStore,
		jwtService:     jwtService,
		passwordHasher: hasher,
		lendingService: lendingService,
	}

	app.authHandler = api.NewAuthHandler(userStore, jwtService, hasher, hasher, tokenLifetime)
	app.userHandler = api.NewUserHandler(userStore, hasher, lendingService)
	app.authorHandler = api.NewAuthorHandler(authorStore)
	app.bookHandler = api.NewBookHandler(bookStore, authorStore)
	app.authMiddleware = apimiddleware.NewAuthMiddleware(jwtService, userStore)

	return app, nil
}

// Close releases resources held by the application.
func (app *application) Close() error {
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
