// Command statusbar renders a terminal status bar fed by live system state:
// the Hyprland workspace and focused-window title, the system battery, and
// the batteries of connected Bluetooth peripherals.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/sergioahp/statusbar/bar"
	"github.com/sergioahp/statusbar/dbusmon"
	"github.com/sergioahp/statusbar/hypr"
	"github.com/sergioahp/statusbar/queue"
)

func main() {
	var (
		batteryPath = flag.String("battery-path", envOr("STATUSBAR_BATTERY_PATH", dbusmon.DefaultBatteryPath),
			"UPower object path of the system battery")
		logPath = flag.String("log", os.Getenv("STATUSBAR_LOG"),
			"log file path (empty disables logging; the bar owns the terminal)")
		logLevel = flag.String("log-level", envOr("STATUSBAR_LOG_LEVEL", "info"),
			"log level (trace, debug, info, warn, error)")
		maxTitle = flag.Int("title-length", hypr.DefaultMaxTitle,
			"window title length before middle truncation")
	)
	flag.Parse()

	log, err := setupLogging(*logPath, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "statusbar:", err)
		os.Exit(1)
	}

	// Channels are constructed once here and their sending halves injected
	// into each monitor; no global state.
	batteryIn, batteryOut := queue.Unbounded[string]()
	bluetoothIn, bluetoothOut := queue.Unbounded[string]()
	workspaceIn, workspaceOut := queue.Unbounded[hypr.WorkspaceUpdate]()
	titleIn, titleOut := queue.Unbounded[string]()

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		// Without the bus there is nothing to monitor or subscribe to.
		log.Error().Err(err).Msg("failed to connect to system bus")
		fmt.Fprintln(os.Stderr, "statusbar: failed to connect to system bus:", err)
		os.Exit(1)
	}
	defer conn.Close()

	monitor := dbusmon.NewMonitor(conn, dbusmon.Config{
		BatteryPath: *batteryPath,
		Logger:      log.With().Str("component", "dbusmon").Logger(),
	}, batteryIn, bluetoothIn)

	go func() {
		if err := monitor.Run(); err != nil {
			log.Error().Err(err).Msg("bus monitoring stopped")
		}
	}()

	if compositor, err := newCompositorMonitor(log, *maxTitle, workspaceIn, titleIn); err != nil {
		log.Warn().Err(err).Msg("compositor tracking disabled")
		workspaceIn <- hypr.WorkspaceUpdate{Text: "Workspace ?"}
		titleIn <- ""
	} else {
		go func() {
			if err := compositor.Run(); err != nil {
				log.Error().Err(err).Msg("compositor tracking stopped")
			}
		}()
	}

	program := tea.NewProgram(bar.New(bar.Inputs{
		Workspace: workspaceOut,
		Title:     titleOut,
		Bluetooth: bluetoothOut,
		Battery:   batteryOut,
	}))

	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("bar exited with error")
		fmt.Fprintln(os.Stderr, "statusbar:", err)
		os.Exit(1)
	}
}

// newCompositorMonitor resolves the Hyprland instance directory and opens
// the compositor monitor against it.
func newCompositorMonitor(log zerolog.Logger, maxTitle int, workspaceIn chan<- hypr.WorkspaceUpdate, titleIn chan<- string) (*hypr.Monitor, error) {
	dir, err := hypr.SocketDir()
	if err != nil {
		return nil, err
	}

	return hypr.NewMonitor(hypr.Config{
		SocketDir: dir,
		MaxTitle:  maxTitle,
		Logger:    log.With().Str("component", "hypr").Logger(),
	}, workspaceIn, titleIn)
}

// setupLogging builds the process logger. With no log file the logger is
// disabled entirely rather than pointed at the terminal the bar draws on.
func setupLogging(path, level string) (zerolog.Logger, error) {
	if path == "" {
		return zerolog.Nop(), nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("bad log level %q: %w", level, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", err)
	}

	return zerolog.New(f).Level(lvl).With().Timestamp().Logger(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
