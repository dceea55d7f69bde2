package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-realm/internal/combat"
	"github.com/pixil98/go-realm/internal/driver"
	"github.com/pixil98/go-realm/internal/events"
	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/presence"
	"github.com/pixil98/go-realm/internal/session"
	"github.com/pixil98/go-realm/internal/status"
	"github.com/pixil98/go-realm/internal/world"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Message bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Persistence
	pg, err := cfg.Database.BuildPostgres()
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}

	// Domain services
	tracker := presence.NewTracker()
	registry := session.NewRegistry()
	router := world.NewRouter(messaging.NewConnPublisher(natsServer))
	respawns := world.NewRespawnManager(pg.Monsters(), router, cfg.World.respawnDelay())
	resolver := combat.NewResolver(pg.Characters(), pg.Monsters(), respawns)
	dispatcher := events.NewDispatcher(tracker, registry, router, pg.Accounts(), pg.Characters(), resolver)

	// Transport; it is also the presence layer's ground truth.
	ws := cfg.Listener.BuildListener(dispatcher, natsServer, registry, tracker)
	tracker.AddSource(ws)

	// Periodic work
	reporter := status.NewReporter(cfg.World.ServerID, tracker, pg.Servers())
	var opts []driver.RealmDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		opts = append(opts, driver.WithTickLength(d))
	}
	realmDriver := driver.NewRealmDriver([]driver.Manager{
		tracker,
		respawns,
		reporter,
	}, opts...)

	workers := service.WorkerList{
		"nats":     natsServer,
		"listener": ws,
		"driver":   realmDriver,
	}
	if cfg.Metrics.Enabled() {
		workers["metrics"] = cfg.Metrics.BuildServer()
	}
	return workers, nil
}
