// Package app owns the storage lifecycle: it opens the database once,
// builds entity services on first use, and tears everything down on
// shutdown.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"parley/internal/config"
	"parley/internal/db"
	"parley/internal/library"
	"parley/internal/message"
	"parley/internal/persona"
	"parley/internal/plugin"
	"parley/internal/provider"
	"parley/internal/session"
	"parley/internal/settings"
)

type App struct {
	cfg  *config.Config
	conn *sql.DB
	q    *db.Queries

	sessions  func() session.Service
	messages  func() message.Service
	personas  func() persona.Service
	providers func() provider.Service
	plugins   func() plugin.Service
	tools     func() library.ToolService
	prompts   func() library.PromptService
	settings  func() settings.Service

	mu       sync.Mutex
	cleanups []func()
}

// New opens the database under the configured data directory, applying
// pending migrations, and returns the service factory. Services are not
// built until first requested.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := db.Connect(ctx, cfg.DataDir())
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:  cfg,
		conn: conn,
		q:    db.New(conn),
	}
	a.sessions = lazy(a, func() session.Service { return session.NewService(a.q) })
	a.messages = lazy(a, func() message.Service { return message.NewService(a.q) })
	a.personas = lazy(a, func() persona.Service { return persona.NewService(a.q) })
	a.providers = lazy(a, func() provider.Service { return provider.NewService(a.conn) })
	a.plugins = lazy(a, func() plugin.Service { return plugin.NewService(a.q) })
	a.tools = lazy(a, func() library.ToolService { return library.NewToolService(a.q) })
	a.prompts = lazy(a, func() library.PromptService { return library.NewPromptService(a.q) })
	a.settings = lazy(a, func() settings.Service { return settings.NewService(a.q) })
	return a, nil
}

// lazy wraps a service constructor so the service is built once, on first
// call, and registered for shutdown. With events disabled the broker is
// shut down immediately: publishes become no-ops and subscribers get a
// closed channel.
func lazy[T any](a *App, build func() T) func() T {
	return sync.OnceValue(func() T {
		svc := build()
		if s, ok := any(svc).(interface{ Shutdown() }); ok {
			if a.cfg.Options.DisableEvents {
				s.Shutdown()
			} else {
				a.mu.Lock()
				a.cleanups = append(a.cleanups, s.Shutdown)
				a.mu.Unlock()
			}
		}
		return svc
	})
}

func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Sessions() session.Service      { return a.sessions() }
func (a *App) Messages() message.Service      { return a.messages() }
func (a *App) Personas() persona.Service      { return a.personas() }
func (a *App) Providers() provider.Service    { return a.providers() }
func (a *App) Plugins() plugin.Service        { return a.plugins() }
func (a *App) Tools() library.ToolService     { return a.tools() }
func (a *App) Prompts() library.PromptService { return a.prompts() }
func (a *App) Settings() settings.Service     { return a.settings() }

// SchemaVersion reports the currently applied migration version.
func (a *App) SchemaVersion(ctx context.Context) (int64, error) {
	return db.SchemaVersion(ctx, a.conn)
}

// Stats returns per-table row counts.
func (a *App) Stats(ctx context.Context) ([]db.TableCount, error) {
	return a.q.Stats(ctx)
}

// Shutdown stops event brokers of every service built so far and closes
// the database.
func (a *App) Shutdown() {
	a.mu.Lock()
	cleanups := a.cleanups
	a.cleanups = nil
	a.mu.Unlock()

	for _, cleanup := range cleanups {
		cleanup()
	}
	if err := a.conn.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}
