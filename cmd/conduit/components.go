package main

import (
	"context"

	"github.com/conduit-labs/conduit/component"
	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/server"
)

// databaseComponent manages the already-opened database connection's
// lifecycle: ping on start, close on stop.
type databaseComponent struct {
	db *database.DB
}

func (d *databaseComponent) Name() string { return "database" }

func (d *databaseComponent) Start(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *databaseComponent) Stop(context.Context) error {
	return d.db.Close()
}

func (d *databaseComponent) Health(ctx context.Context) component.Health {
	if err := d.db.PingContext(ctx); err != nil {
		return component.Health{
			Name:    "database",
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: "database", Status: component.StatusHealthy}
}

// serverComponent adapts the HTTP server to the component lifecycle.
type serverComponent struct {
	srv     *server.Server
	started bool
}

func (s *serverComponent) Name() string { return "server" }

func (s *serverComponent) Start(ctx context.Context) error {
	if err := s.srv.Start(ctx); err != nil {
		return err
	}
	s.started = true
	return nil
}

func (s *serverComponent) Stop(ctx context.Context) error {
	s.started = false
	return s.srv.Stop(ctx)
}

func (s *serverComponent) Health(context.Context) component.Health {
	if !s.started {
		return component.Health{Name: "server", Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: "server", Status: component.StatusHealthy}
}
