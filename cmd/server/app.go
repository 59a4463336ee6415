package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/weapon-deck-api/internal/clients/catalogsource"
	"github.com/KirkDiggler/weapon-deck-api/internal/config"
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/composition"
	"github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/customization"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/inventory"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/weapon-deck-api/internal/pkg/sessionlock"
	redisclient "github.com/KirkDiggler/weapon-deck-api/internal/redis"
	catalogrepo "github.com/KirkDiggler/weapon-deck-api/internal/repositories/catalog"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/presets"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
	"github.com/KirkDiggler/weapon-deck-api/internal/storage/sqlite"
	"github.com/KirkDiggler/weapon-deck-api/internal/telemetry"
)

// app holds the wired services and the connections they share
type app struct {
	db    *sqlite.DB
	redis redisclient.Client

	states   sessionstate.Repository
	sessions session.Service

	catalog       catalog.Service
	decks         deck.Service
	inventory     inventory.Service
	customization customization.Service
}

// openCatalog opens sqlite and builds the catalog service; import-catalog
// needs nothing more
func openCatalog(ctx context.Context, cfg *config.Config, handle *weapons.CatalogHandle) (*sqlite.DB, catalog.Service, error) {
	db, err := sqlite.Open(ctx, sqlite.DefaultConfig(cfg.SQLitePath))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open sqlite")
	}

	repo, err := catalogrepo.NewSQLite(&catalogrepo.SQLiteConfig{DB: db})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	svc, err := catalog.NewOrchestrator(&catalog.Config{
		Repository: repo,
		Source:     catalogsource.New(&catalogsource.Config{Path: cfg.CatalogPath}),
		Handle:     handle,
		Clock:      clock.New(),
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, svc, nil
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	return redisclient.New(&redisclient.Config{
		Addr:       cfg.RedisAddr,
		MasterName: cfg.RedisMasterName,
		Sentinels:  cfg.RedisSentinels,
		PoolSize:   cfg.RedisPoolSize,
		DB:         cfg.RedisDB,
		UseTLS:     cfg.RedisTLS,
	})
}

// newApp wires every service and loads the catalog so decks can be built
// as soon as the server accepts calls
func newApp(ctx context.Context, cfg *config.Config) (a *app, err error) {
	handle := weapons.NewCatalogHandle(nil)

	a = &app{}
	a.db, a.catalog, err = openCatalog(ctx, cfg, handle)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	imported, err := a.catalog.Import(ctx, &catalog.ImportInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}
	slog.InfoContext(ctx, "Catalog ready",
		"version", imported.Version,
		"outcome", imported.Outcome,
	)

	a.redis, err = newRedisClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	if err = a.redis.Ping(ctx).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	a.states, err = sessionstate.NewRedisRepository(&sessionstate.Config{
		Client: a.redis,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}

	presetRepo, err := presets.NewSQLite(&presets.SQLiteConfig{DB: a.db})
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	telemetry.ObserveSessionEvents(bus, session.EventTypes())

	a.sessions, err = session.NewStore(&session.Config{
		Repository: a.states,
		Catalog:    handle,
		Locker:     sessionlock.New(),
		EventBus:   bus,
	})
	if err != nil {
		return nil, err
	}

	resolver, err := composition.NewResolver(&composition.Config{Catalog: handle})
	if err != nil {
		return nil, err
	}

	shuffler, err := shuffle.New(&shuffle.Config{
		Roller:          dice.DefaultRoller,
		LookaheadWindow: cfg.LookaheadWindow,
	})
	if err != nil {
		return nil, err
	}

	systemClock := clock.New()

	a.decks, err = deck.NewOrchestrator(&deck.Config{
		Sessions: a.sessions,
		Presets:  presetRepo,
		Resolver: resolver,
		Shuffler: shuffler,
		Clock:    systemClock,
	})
	if err != nil {
		return nil, err
	}

	a.inventory, err = inventory.NewOrchestrator(&inventory.Config{
		Sessions:    a.sessions,
		Clock:       systemClock,
		IDGenerator: idgen.NewUUID("item"),
	})
	if err != nil {
		return nil, err
	}

	a.customization, err = customization.NewOrchestrator(&customization.Config{
		Presets:     presetRepo,
		Sessions:    a.sessions,
		Decks:       a.decks,
		Resolver:    resolver,
		Catalog:     handle,
		IDGenerator: idgen.NewUUID("preset"),
		Clock:       systemClock,
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Close releases the redis pool and the sqlite handle
func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Wrap(errs[0], "failed to close resources")
	}
	return nil
}
