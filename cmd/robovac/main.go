package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/robovac/internal/config"
	"github.com/Mshel/robovac/internal/game"
	"github.com/Mshel/robovac/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type options struct {
	scenarioPath string
	plain        bool
	concurrent   bool
	delay        time.Duration
	dbPath       string
	debug        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scenarioPath, "scenario", "", "YAML scenario to run instead of the reference scenario")
	flag.BoolVar(&opts.plain, "plain", false, "print frames to stdout instead of starting the TUI")
	flag.BoolVar(&opts.concurrent, "concurrent", false, "run all robots at once (console mode only)")
	flag.DurationVar(&opts.delay, "delay", config.Envs.RenderDelay, "pause between rendered frames")
	flag.StringVar(&opts.dbPath, "db", config.Envs.DBPath, "SQLite run history file, empty to disable")
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log.SetLevel(config.Envs.LogLevel)
	if opts.debug {
		log.SetLevel(log.DebugLevel)
	}

	var history *game.RunHistory
	if opts.dbPath != "" {
		h, err := game.OpenRunHistory(opts.dbPath)
		if err != nil {
			log.Error("Run history disabled", "path", opts.dbPath, "error", err)
		} else {
			history = h
			defer history.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// a second signal kills the process
		<-ctx.Done()
		stop()
	}()

	if opts.plain || opts.concurrent || opts.scenarioPath != "" {
		return runConsole(ctx, opts, history)
	}

	p := tea.NewProgram(ui.NewControllerModel(ctx, history, opts.delay, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// runConsole runs one scenario straight to the terminal and prints its
// reports.
func runConsole(ctx context.Context, opts options, history *game.RunHistory) error {
	scenario := game.DefaultScenario()
	if opts.scenarioPath != "" {
		loaded, err := game.LoadScenario(opts.scenarioPath)
		if err != nil {
			return err
		}
		scenario = loaded
	}

	console := ui.NewConsoleRenderer(ctx, os.Stdout, opts.delay)
	if opts.plain {
		console.Plain()
	}
	renderer := game.MultiRenderer{console, game.RenderFunc(func(frame game.Frame) {
		log.Debug("Frame", "robot", frame.Robot, "event", frame.Event, "x", frame.X, "y", frame.Y)
	})}

	sim, err := game.NewSimulation(scenario, renderer)
	if err != nil {
		return err
	}

	execute := sim.Run
	if opts.concurrent {
		execute = sim.RunConcurrently
	}
	reports, err := execute(ctx)
	for _, report := range reports {
		fmt.Printf("%s (%s): %d moves, %d cleaned, ended at (%d, %d), %d dirt left\n",
			report.Robot, report.Strategy, report.Stats.Moves, report.Stats.Cleaned,
			report.End.X, report.End.Y, report.DirtRemaining)
		if history != nil {
			if saveErr := history.Save(report); saveErr != nil {
				log.Error("Failed to save run report", "robot", report.Robot, "error", saveErr)
			}
		}
	}
	return err
}
