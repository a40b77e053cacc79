package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"terrascope/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	names, err := geom.List(m.fs, ".")
	if err != nil {
		m.status = "read dir error: " + err.Error()
		m.log.Warn("read dir", "root", m.fs.Root(), "err", err)
		return
	}
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: name})
	}
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 && m.showSidebar {
		m.status = "no point cloud files in " + m.fs.Root()
	}
}

// loadPath loads a point cloud from the sidebar filesystem.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(m.fs, p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Error("load", "path", p, "err", err)
		return
	}
	m.setCloud(d, p)
	m.status = fmt.Sprintf("loaded: %s  pts=%d lines=%d  z=[%.2f, %.2f]",
		filepath.Base(p), len(d.Points), len(d.Lines), d.ZMin, d.ZMax)
	m.log.Info("loaded point cloud", "path", p, "points", len(d.Points), "lines", len(d.Lines))
	if m.showSamples {
		m.refreshSamples()
	}
}
