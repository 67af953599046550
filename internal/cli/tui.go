package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"distrimed/internal/catalog"
	"distrimed/internal/config"
	"distrimed/internal/eventbus"
	"distrimed/internal/logic"
	"distrimed/internal/ui"
)

// events the program needs to see; the rest stay on the bus
var forwardedEvents = []eventbus.EventType{
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
	eventbus.EventCatalogLoaded,
	eventbus.EventCatalogReloaded,
	eventbus.EventError,
}

func runTUI(cmd *cobra.Command, opts *options) error {
	bus := eventbus.New()
	defer bus.Close()

	// subscribe before loading the config; events queue until the program runs
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			bus.Logger().Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, forwardEvent)
		defer unsubscribe()
	}

	cfg, cfgSvc, err := loadSessionConfig(opts, bus)
	if err != nil {
		return err
	}

	logger, logCloser, err := newFileLogger(cfg.LogFile, opts.verbose, opts.debug)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	bus.SetLogger(logger)
	logger.Info("starting distrimed", "version", Version, "config", cfgSvc.Path(), "catalog", cfg.CatalogPath)

	stores := logic.NewMemoryStores()
	catalogSvc := catalog.NewService(cfg.CatalogPath, stores, bus, catalog.WithLogger(logger))
	defer catalogSvc.Close()

	model := ui.NewModel(bus, cfg, stores, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	model.SetProgram(p)

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	if err := catalogSvc.Load(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if cfg.UISettings.WatchCatalog {
		watcher := catalog.NewWatcher(catalogSvc,
			catalog.WithDebounce(time.Duration(cfg.UISettings.DebounceMS)*time.Millisecond),
			catalog.WithWatchLogger(logger))
		if err := watcher.Start(); err != nil {
			logger.Warn("catalog watcher disabled", "err", err)
		} else {
			defer watcher.Stop()
		}
	}

	logger.Debug("starting UI")
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// loadSessionConfig attaches bus to the config service before loading, so
// the load is published, and writes the defaults when no config file exists.
func loadSessionConfig(opts *options, bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.WithBus(opts.configService(), bus)
	_, statErr := os.Stat(svc.Path())

	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if errors.Is(statErr, os.ErrNotExist) {
		if err := svc.Save(cfg); err != nil {
			bus.Publish(eventbus.ErrorEvent{Message: "could not write default config", Err: err})
		}
	}

	if err := opts.applyOverrides(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

// loadCatalog reads path into stores without publishing events
func loadCatalog(path string, stores logic.Stores, logger *slog.Logger) error {
	if err := catalog.NewService(path, stores, nil, catalog.WithLogger(logger)).Load(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return nil
}
