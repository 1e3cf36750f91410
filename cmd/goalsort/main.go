package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"goalsort/internal/config"
	"goalsort/internal/eventbus"
	"goalsort/internal/goals"
	"goalsort/internal/store"
	"goalsort/internal/ui"
)

type options struct {
	configPath  string
	logFile     string
	rowHeight   int
	dbPath      string
	writeConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "goalsort",
		Short:        "A goal list you reorder by dragging rows with the mouse",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: user config dir/goalsort/config.toml)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "goalsort.log", "file to write logs to")
	cmd.Flags().IntVar(&opts.rowHeight, "row-height", 0, "terminal lines per row (overrides the config)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "keep goals in the SQLite database at this path")
	cmd.Flags().BoolVar(&opts.writeConfig, "write-config", false, "write the effective config file and exit")
	return cmd
}

func run(opts *options) error {
	// Set up logging
	logFile, err := tea.LogToFile(opts.logFile, "goalsort")
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	applyOverrides(cfg, opts)

	if opts.writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return nil
	}

	goalStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer goalStore.Close()

	goalSvc := goals.NewService(ctx, bus, goalStore)
	defer goalSvc.Stop()

	uiModel := ui.NewModel(bus, cfg)
	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	unsubscribe := []func(){
		bus.Subscribe(eventbus.EventGoalsChanged, forward),
		bus.Subscribe(eventbus.EventError, forward),
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if err := goalSvc.Seed(ctx, cfg.Seed.DemoGoals); err != nil {
		log.Printf("Error seeding goals: %v", err)
	}

	_, err = p.Run()

	// Cleanup
	for _, u := range unsubscribe {
		u()
	}
	close(eventChan)

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func applyOverrides(cfg *config.Config, opts *options) {
	if opts.rowHeight != 0 {
		cfg.List.RowHeight = opts.rowHeight
	}
	if opts.dbPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = opts.dbPath
	}
	cfg.Normalize()
}

func openStore(ctx context.Context, cfg *config.Config) (store.GoalStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		log.Printf("Using SQLite goal store at %s", cfg.Storage.Path)
		s, err := store.OpenSQLite(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return store.NewMemoryStore(), nil
	}
}
