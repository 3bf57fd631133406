// Package main is the entry point for the pathstore demo dashboard.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pathstore/internal/store"
	"github.com/dshills/pathstore/internal/store/value"
	"github.com/dshills/pathstore/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// defaultState seeds the demo container when no state file is given.
const defaultState = `{
	"counter": 0,
	"volume": 50,
	"name": "demo",
	"nested": {"depth": 1, "label": "inner"},
	"list": [10, 20, 30]
}`

func main() {
	os.Exit(run())
}

func run() int {
	var statePath string
	var key string
	var showVersion bool

	flag.StringVar(&statePath, "state", "", "Path to a JSON file with the initial state")
	flag.StringVar(&key, "key", "demo", "Container key")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("pathstore %s (%s)\n", version, commit)
		return 0
	}

	initial, err := loadState(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	registry := store.NewRegistry()
	container, err := registry.Create(key, initial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create container: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	dashboard := tui.New(screen, container)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		dashboard.Stop()
		screen.Fini()
		os.Exit(1)
	}()

	if err := dashboard.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadState(path string) (value.Node, error) {
	if path == "" {
		return value.FromJSON([]byte(defaultState))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Node{}, fmt.Errorf("read state file: %w", err)
	}
	n, err := value.FromJSON(data)
	if err != nil {
		return value.Node{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return n, nil
}
