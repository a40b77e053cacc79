package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"terrascope/internal/geom"
	"terrascope/internal/profile"
	"terrascope/internal/route"
	"terrascope/internal/terrain"
)

// Config carries the viewer's startup settings.
type Config struct {
	Size      int
	Roughness float64
	Seed      int64
	Edges     terrain.EdgeMode
	Generator string // "diamond" or "simplex"

	Steps    int
	Strategy string // "linear", "bucket" or "rtree"
	Workers  int

	Algorithm route.Algorithm

	// Router answers route requests; nil disables routing.
	Router route.Router
	// FS backs the file sidebar; nil means the working directory.
	FS     billy.Filesystem
	Logger *log.Logger
}

// DefaultConfig is a 33x33 grid with roughness 1.
func DefaultConfig() Config {
	return Config{
		Size:      32,
		Roughness: 1,
		Seed:      1,
		Edges:     terrain.EdgeWrap,
		Generator: "diamond",
		Steps:     profile.DefaultSteps,
		Strategy:  "linear",
		Algorithm: route.AStar,
	}
}

type viewMode int

const (
	gridMode viewMode = iota
	cloudMode
)

type Model struct {
	cfg Config
	log *log.Logger
	fs  billy.Filesystem

	width  int
	height int

	showSidebar bool
	helpVisible bool
	status      string
	mode        viewMode

	// Grid mode
	hm        *terrain.Heightmap
	cursor    terrain.Coord
	selection []terrain.Coord
	path      terrain.Path

	// Cloud mode
	zoom     float64
	offsetX  int
	offsetY  int
	selPath  string
	data     geom.Data
	cloud    profile.Cloud
	finder   profile.Finder
	strategy profile.Strategy
	anchors  []int
	prof     *profile.Profile

	// Series shown in the chart and the samples table
	series *series

	// Route overlay
	routing  bool
	routeRes *route.Result
	routeGen int

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// File explorer
	l     list.Model
	items []list.Item

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering  bool
	hoverIdx  int
	hoverMicX int
	hoverMicY int

	// samples table
	showSamples bool
	tbl         table.Model
}

// New builds a viewer showing a heightmap generated from cfg.
func New(cfg Config) Model {
	def := DefaultConfig()
	if cfg.Size == 0 {
		cfg.Size = def.Size
	}
	if cfg.Steps == 0 {
		cfg.Steps = def.Steps
	}
	if cfg.Generator == "" {
		cfg.Generator = def.Generator
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = def.Algorithm
	}
	m := Model{
		cfg:         cfg,
		log:         cfg.Logger,
		fs:          cfg.FS,
		helpVisible: true,
		zoom:        1.0,
		status:      "terrascope ready",
		hoverIdx:    -1,
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	if m.fs == nil {
		cwd, _ := os.Getwd()
		m.fs = osfs.New(cwd)
	}
	var err error
	if m.strategy, err = profile.ParseStrategy(cfg.Strategy); err != nil {
		m.status = err.Error()
		m.strategy = profile.Linear
	}

	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Point clouds"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT with z (POINT Z, MULTIPOINT Z, LINESTRING Z), one per line. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.regenerate()
	m.refreshDir()
	return m
}

// NewWithPath opens a point cloud at launch.
func NewWithPath(cfg Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// regenerate rebuilds the heightmap from the current settings and clears
// any selection made on the old one.
func (m *Model) regenerate() {
	var (
		hm  *terrain.Heightmap
		err error
	)
	switch m.cfg.Generator {
	case "simplex":
		hm, err = terrain.Simplex(terrain.SimplexOptions{Size: m.cfg.Size, Seed: m.cfg.Seed})
	default:
		hm, err = terrain.Synthesize(terrain.Options{
			Size:      m.cfg.Size,
			Roughness: m.cfg.Roughness,
			Edges:     m.cfg.Edges,
		}, rand.New(rand.NewSource(m.cfg.Seed)))
	}
	if err != nil {
		m.status = "generate: " + err.Error()
		m.log.Error("generate", "err", err, "size", m.cfg.Size, "roughness", m.cfg.Roughness)
		return
	}
	m.hm = hm
	m.selection, m.path = nil, nil
	m.clearRoute()
	if m.mode == gridMode {
		m.series = nil
	}
	n := hm.Size()
	m.cursor = terrain.Coord{X: min(m.cursor.X, n), Y: min(m.cursor.Y, n)}
	lo, hi := hm.Extent()
	m.status = fmt.Sprintf("%s %dx%d seed=%d roughness=%.2f edges=%s  z=[%.1f, %.1f]",
		m.cfg.Generator, n+1, n+1, m.cfg.Seed, m.cfg.Roughness, m.cfg.Edges, lo, hi)
	m.log.Info("generated heightmap", "generator", m.cfg.Generator, "size", n, "seed", m.cfg.Seed,
		"roughness", m.cfg.Roughness, "edges", m.cfg.Edges, "min", lo, "max", hi)
}

// setCloud replaces the point cloud and rebuilds its nearest-point index.
func (m *Model) setCloud(d geom.Data, name string) {
	m.data = d
	m.cloud = profile.FromPoints(d.Points)
	m.finder = nil
	if len(m.cloud) > 0 {
		m.finder = m.strategy(m.cloud)
	}
	m.selPath = name
	m.anchors, m.prof = nil, nil
	m.clearRoute()
	m.series = nil
	m.hovering, m.hoverIdx = false, -1
	m.zoom, m.offsetX, m.offsetY = 1.0, 0, 0
	m.mode = cloudMode
}
