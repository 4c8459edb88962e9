// Package codebase keeps a workspace of D source files in parsed form:
// one syntax tree, outline, and diagnostic list per file, refreshed as
// files change. The LSP server in this package serves that state to
// editors.
package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/virens/dlt/d/outline"
	"github.com/virens/dlt/d/parser"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	config  *Config
	files   map[string]*FileInfo
}

// Diagnostic is one parser finding, positioned in the file it came from.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
	IsError bool
}

type FileInfo struct {
	Path        string
	Content     []byte
	Module      *parser.Node
	Outline     []*outline.Symbol
	Diagnostics []Diagnostic
	ErrorCount  int
}

func New(rootDir string, config *Config) *Codebase {
	if config == nil {
		config = DefaultConfig()
	}
	return &Codebase{
		rootDir: rootDir,
		config:  config,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Config() *Config {
	return c.config
}

// ScanAll walks the root and parses every .d file, skipping excluded
// directories. Unreadable files are skipped, not fatal.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			rel, relErr := filepath.Rel(c.rootDir, path)
			if relErr == nil && rel != "." && c.config.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".d" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses content under path, replacing whatever state the
// path held before.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	var diagnostics []Diagnostic
	sink := func(file string, line, column int, message string, isError bool) {
		if len(diagnostics) >= c.config.MaxDiagnostics {
			return
		}
		diagnostics = append(diagnostics, Diagnostic{
			Line:    line,
			Column:  column,
			Message: message,
			IsError: isError,
		})
	}

	module, p := parser.ParseModule(content,
		parser.WithFile(filepath.Base(path)),
		parser.WithDiagnostics(sink))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{
		Path:        path,
		Content:     content,
		Module:      module,
		Outline:     outline.Build(content, module),
		Diagnostics: diagnostics,
		ErrorCount:  p.Errors(),
	}
	return nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

// Lookup returns the parsed state for path, or nil when the path has
// not been scanned.
func (c *Codebase) Lookup(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns every scanned path in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
