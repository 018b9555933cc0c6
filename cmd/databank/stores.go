package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rpdbs/research-databank/internal/api/handler"
	"github.com/rpdbs/research-databank/internal/core/ports"
	mongostore "github.com/rpdbs/research-databank/internal/infrastructure/db/mongo"
	sqlitestore "github.com/rpdbs/research-databank/internal/infrastructure/db/sqlite"
	"github.com/rpdbs/research-databank/internal/pkg/config"
)

// stores bundles the repositories of the configured backend.
type stores struct {
	accounts ports.AccountRepository
	projects ports.ProjectRepository
	audit    ports.AuditRepository

	name  string
	ping  handler.PingFunc
	close func(ctx context.Context) error
}

// openStores connects to the configured backend and brings its schema up to
// date: goose migrations for sqlite, indexes for mongo.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

		return &stores{
			accounts: mongostore.NewAccountRepository(db),
			projects: mongostore.NewProjectRepository(db),
			audit:    mongostore.NewAuditRepository(db),
			name:     "mongodb",
			ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:    client.Disconnect,
		}, nil

	case config.DriverSQLite:
		db, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := sqlitestore.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite database")

		return &stores{
			accounts: sqlitestore.NewAccountRepository(db),
			projects: sqlitestore.NewProjectRepository(db),
			audit:    sqlitestore.NewAuditRepository(db),
			name:     "sqlite",
			ping:     db.PingContext,
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
