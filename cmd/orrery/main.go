package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/render/term"
	"github.com/lixenwraith/orrery/render/window"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/telemetry"
)

const (
	backendTerm   = "term"
	backendWindow = "window"
)

type runOptions struct {
	configPath string
	keymapPath string
	backend    string
	telemetry  string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	runE := func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), opts)
	}

	root := &cobra.Command{
		Use:           "orrery",
		Short:         "Interactive solar system visualizer",
		Long:          "Orrery animates a tree of orbiting bodies around a sun that can grow, shrink and go plasma.\n\n" + "Keys: " + strings.TrimSpace(helpKeys),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file (defaults when empty)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the visualizer (default command)",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}
	for _, fs := range []*cobra.Command{root, runCmd} {
		f := fs.Flags()
		f.StringVarP(&opts.backend, "backend", "b", backendTerm, "render backend: term or window")
		f.StringVar(&opts.keymapPath, "keymap", "", "TOML key binding file, replaces [keys]")
		f.StringVar(&opts.telemetry, "telemetry", "", "telemetry listen address, overrides [telemetry] addr")
		f.BoolVar(&opts.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "Print the configured body tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			return printBodies(cmd.OutOrStdout(), cfg.BodySpec())
		},
	}

	root.AddCommand(runCmd, bodiesCmd)
	return root
}

const helpKeys = `
Up grow  Down shrink  Right plasma  Left stop  F reset
W/A/S/D pan  wheel zoom  Space speed  R banish  Esc quit
`

func run(parent context.Context, opts *runOptions) error {
	if opts.backend != backendTerm && opts.backend != backendWindow {
		return fmt.Errorf("unknown backend %q (want %s or %s)", opts.backend, backendTerm, backendWindow)
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.telemetry != "" {
		cfg.Telemetry.Addr = opts.telemetry
	}

	km, err := cfg.Keymap()
	if err != nil {
		return err
	}
	if opts.keymapPath != "" {
		data, err := os.ReadFile(opts.keymapPath)
		if err != nil {
			return fmt.Errorf("read keymap: %w", err)
		}
		if km, err = input.LoadKeyConfig(data); err != nil {
			return fmt.Errorf("%s: %w", opts.keymapPath, err)
		}
	}

	settings := cfg.Settings()
	sc := scene.New()
	cfg.ApplyCamera(&sc.Camera)
	tree, err := body.NewTree(cfg.BodySpec(), sc, settings.DistanceFactor)
	if err != nil {
		return err
	}

	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio.Enabled
	acfg.Volume = cfg.Audio.Volume
	acfg.SampleRate = cfg.Audio.SampleRate
	sound := audio.NewSoundManager(acfg)
	if err := sound.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	u, err := engine.NewUpdater(engine.NewContext(settings), tree, sc, sound)
	if err != nil {
		return err
	}
	log.Printf("loaded %d bodies, backend %s", tree.Len(), opts.backend)

	if cfg.Telemetry.Addr != "" {
		stop, err := startTelemetry(u, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if opts.backend == backendWindow {
		return window.Run(u, window.Options{Context: ctx, TPS: cfg.Frame.TPS, Keymap: km})
	}
	return runTerm(ctx, u, km, term.Options{TPS: cfg.Frame.TPS, MaxDt: cfg.Frame.MaxDt})
}

// runTerm owns the tcell screen and restores the terminal on panic
func runTerm(ctx context.Context, u *engine.Updater, km input.Keymap, opts term.Options) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer restoreOnPanic(screen, os.Stderr, &err)

	return term.Run(ctx, screen, u, term.NewTranslator(km, nil), opts)
}

// restoreOnPanic finalizes screen and turns a panic into *errp, so the
// caller's deferred cleanup still runs. Must be deferred directly.
func restoreOnPanic(screen tcell.Screen, stderr io.Writer, errp *error) {
	r := recover()
	screen.Fini()
	if r == nil {
		return
	}
	fmt.Fprintf(stderr, "\n\x1b[31mORRERY CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(stderr, "Stack Trace:\n%s\n", debug.Stack())
	*errp = fmt.Errorf("crashed: %v", r)
}

// startTelemetry registers metrics, hooks the updater and starts serving
// The returned func shuts the server down
func startTelemetry(u *engine.Updater, tc config.TelemetryConfig) (func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pub := &telemetry.Publisher{}
	u.AddHook(telemetry.Hook(pub, telemetry.NewMetrics(reg)))

	srv := telemetry.NewServer(pub, reg, telemetry.Options{Addr: tc.Addr, StreamHz: tc.StreamHz})
	if _, err := srv.Start(); err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			log.Printf("telemetry: shutdown: %v", err)
		}
	}, nil
}

// printBodies writes the tree one body per line, satellites indented
func printBodies(w io.Writer, root body.Spec) error {
	var walk func(s body.Spec, depth int) error
	walk = func(s body.Spec, depth int) error {
		line := fmt.Sprintf("%s%-10s diameter %-8.4g day %-7.4g", strings.Repeat("  ", depth), s.Name, s.Diameter, s.Day)
		if s.Period != 0 {
			line += fmt.Sprintf(" period %.4g", s.Period)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
		for _, c := range s.Children {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, 0)
}
