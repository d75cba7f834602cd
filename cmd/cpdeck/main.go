package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cpdeck/internal/catalogue"
	"cpdeck/internal/catalogue/codeforces"
	"cpdeck/internal/config"
	"cpdeck/internal/eventbus"
	"cpdeck/internal/lang"
	"cpdeck/internal/ui"
	"cpdeck/internal/workspace"
)

var version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Print version and exit")
		logPath     = flag.String("log", "cpdeck.log", "Log file path")
		configPath  = flag.String("config", "", "Config file path (defaults to the user config directory)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("cpdeck %s\n", version)
		return
	}

	// Set up logging
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	if *configPath != "" {
		cfg, err = configSvc.LoadFromPath(*configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Register catalogue sources and resolve them against the config
	registry := catalogue.NewRegistry()
	registry.Register(codeforces.SourceName, codeforces.New)

	sources := make(map[string]catalogue.Source)
	for _, name := range registry.IDs() {
		src, err := registry.New(name, cfg)
		if err != nil {
			log.Printf("Skipping source %s: %v", name, err)
			continue
		}
		sources[name] = src
	}

	// Catalogue service subscribes to request events automatically
	_ = catalogue.NewService(bus, sources)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, configSvc, sources, lang.Default(), workspace.New(cfg.BaseDir))

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventCatalogueLoaded, forward)
	bus.Subscribe(eventbus.EventLogInCompleted, forward)
	bus.Subscribe(eventbus.EventSubmitCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
}
