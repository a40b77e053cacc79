package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"terrascope/internal/profile"
	"terrascope/internal/route"
	"terrascope/internal/terrain"
	"terrascope/internal/tui"
)

func main() {
	def := tui.DefaultConfig()
	var (
		size      = flag.Int("size", def.Size, "heightmap size, a power of two")
		roughness = flag.Float64("roughness", def.Roughness, "diamond-square roughness, >= 0")
		seed      = flag.Int64("seed", def.Seed, "random seed")
		edges     = flag.String("edges", def.Edges.String(), "square pass edges: wrap or clamp")
		generator = flag.String("generator", def.Generator, "heightmap generator: diamond or simplex")
		steps     = flag.Int("steps", def.Steps, "cross-section sample steps")
		strategy  = flag.String("strategy", def.Strategy, "nearest-point search: linear, bucket or rtree")
		workers   = flag.Int("workers", 0, "goroutines per cross-section (0 or 1 samples serially)")
		routerURL = flag.String("router", "", "base URL of the optimal-path service")
		algorithm = flag.String("algorithm", string(def.Algorithm), "route algorithm: astar, dijkstra, greedy or theta_star")
		logPath   = flag.String("log", "", "write logs to this file")
		debug     = flag.Bool("debug", false, "log at debug level")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [point-cloud file]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, closeLog, err := openLog(*logPath, *debug)
	if err != nil {
		log.Fatal("open log", "err", err)
	}
	defer closeLog()

	cfg := def
	cfg.Size, cfg.Roughness, cfg.Seed = *size, *roughness, *seed
	cfg.Generator, cfg.Steps, cfg.Strategy, cfg.Workers = *generator, *steps, *strategy, *workers
	cfg.Logger = logger
	if cfg.Edges, err = terrain.ParseEdgeMode(*edges); err != nil {
		log.Fatal("bad -edges", "err", err)
	}
	if _, err := profile.ParseStrategy(*strategy); err != nil {
		log.Fatal("bad -strategy", "err", err)
	}
	if cfg.Algorithm, err = route.ParseAlgorithm(*algorithm); err != nil {
		log.Fatal("bad -algorithm", "err", err)
	}
	if *routerURL != "" {
		cfg.Router = route.NewHTTPClient(*routerURL, logger)
	}

	var m tea.Model
	if path := flag.Arg(0); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Fatal("resolve path", "path", path, "err", err)
		}
		cfg.FS = osfs.New(filepath.Dir(abs))
		m = tui.NewWithPath(cfg, filepath.Base(abs))
	} else {
		m = tui.New(cfg)
	}
	logger.Info("starting", "size", cfg.Size, "generator", cfg.Generator, "strategy", cfg.Strategy, "router", *routerURL)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// openLog returns a logger writing to path, or discarding when path is
// empty. The terminal belongs to the viewer, so logs never go to stderr.
func openLog(path string, debug bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "terrascope"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
