// dashgrid renders a live-updating dashboard grid in the terminal.
//
// Groups of typed elements (gauges, switches, buttons, indicators, text,
// sparklines, sliders) are packed into responsive masonry columns and
// repainted incrementally: only rows whose values or selection changed are
// rewritten between frames.
//
// Usage:
//
//	dashgrid [flags]
//
// Flags:
//
//	-config string   Path to configuration file (default: ~/.config/dashgrid/config.yaml)
//	-theme string    Theme override (monitoring|minimal|full)
//	-columns int     Column count override
//	-seed int        Random seed for the demo value feed
//	-version         Print version and exit
//
// Keys: tab/arrows move the selection, space or enter activates the
// selected element, t cycles themes, b toggles borders, : enters command
// mode, q quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/dashgrid/config"
	"gitlab.com/tinyland/lab/dashgrid/display/color"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/dashgrid/config.yaml)")
		themeFlag   = flag.String("theme", "", "Theme override (monitoring|minimal|full)")
		columnsFlag = flag.Int("columns", 0, "Column count override")
		seedFlag    = flag.Int64("seed", time.Now().UnixNano(), "Random seed for the demo value feed")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("dashgrid %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dashgrid: %v\n", err)
		os.Exit(1)
	}
	if *themeFlag != "" {
		cfg.Display.Theme = *themeFlag
	}
	if *columnsFlag > 0 {
		cfg.Layout.Columns = *columnsFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "dashgrid: %v\n", err)
		os.Exit(1)
	}

	color.Apply()

	if err := run(cfg, *seedFlag); err != nil {
		fmt.Fprintf(os.Stderr, "dashgrid: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, seed int64) error {
	state, err := term.MakeRaw(os.Stdin.Fd())
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(os.Stdin.Fd(), state)

	tick, err := time.ParseDuration(cfg.Demo.TickInterval)
	if err != nil || tick <= 0 {
		tick = 500 * time.Millisecond
	}

	app := newApp(cfg, seed)
	defer app.renderer.Close()

	keys := make(chan key, 16)
	go readKeys(os.Stdin, keys)

	resize := make(chan os.Signal, 1)
	signal.Notify(resize, syscall.SIGWINCH)
	defer signal.Stop(resize)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	// Window managers deliver SIGWINCH per intermediate size during a
	// drag; coalesce the burst before recalculating and redrawing.
	resizeDebounce := newDebouncer(50 * time.Millisecond)

	// Single-threaded event loop: every render happens here, serially.
	// The goroutines behind keys/resize only feed channels.
	app.render()
	for {
		select {
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if quit := app.handleKey(k); quit {
				return nil
			}
			app.render()

		case <-ticker.C:
			for _, ev := range app.feed.Tick() {
				app.log.Add(ev)
			}
			app.render()

		case <-resize:
			resizeDebounce.Trigger()

		case <-resizeDebounce.C():
			resizeDebounce.Fired()
			w, h := terminalSize()
			app.engine.UpdateTerminalSize(w, h)
			app.renderer.Invalidate()
			app.render()
		}
	}
}
