package app

import (
	"context"
	"log"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/database"
	dbpostgres "talenthub/internal/database/postgres"
	"talenthub/internal/database/seeder"
	"talenthub/internal/domain/user"
	"talenthub/internal/infrastructure/session"
	"talenthub/internal/localstore"
	"talenthub/internal/pkg/jwt"
	"talenthub/internal/repository"
	"talenthub/internal/store"
	"talenthub/internal/ws"
)

type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Local    *localstore.Store
	Sessions *session.Sessions
	Users    user.Repository
	JWT      jwt.Service
	Hub      *ws.Hub
	Store    *store.Store
}

// NewContainer wires the session. Both persistence backends degrade
// silently: without Postgres the catalog starts empty, without the local
// blob file the session state is memory-only.
func NewContainer(cfg config.Config, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		cancel()
		if err != nil {
			logger.Printf("[App] remote catalog unreachable, continuing without it: %v", err)
		} else {
			c.DB = db
			c.Users = repository.NewPostgresUserRepository(db)
			if cfg.Database.SeedOnStart {
				seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
				if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(seedCtx, db); err != nil {
					logger.Printf("[App] catalog seed failed: %v", err)
				}
				seedCancel()
			}
		}
	} else {
		logger.Printf("[App] no remote catalog configured")
	}

	local, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		logger.Printf("[App] local store unavailable, session state is memory-only: %v", err)
	} else {
		c.Local = local
	}

	c.Sessions = session.NewRedisSessions(logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(logger)

	var catalog store.CatalogSource
	if c.DB != nil {
		catalog = repository.NewPostgresJobRepository(c.DB)
	}
	var blobs store.BlobStore
	if c.Local != nil {
		blobs = c.Local
	}
	c.Store = store.New(catalog, blobs, c.Hub, logger)

	return c
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Local != nil {
		if err := c.Local.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
