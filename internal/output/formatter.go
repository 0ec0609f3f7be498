// Package output renders a report.Result as text, JSON, Markdown, HTML or
// a directory bundle. Formatters register themselves by name at init.
package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/admisi-dashboard/admisi/internal/report"
)

// Formatter writes one report to a stream.
type Formatter interface {
	Name() string
	Format(res *report.Result, w io.Writer) error
}

// DirectoryFormatter is a Formatter whose real output is a directory
// (index.html, charts/, filtered.xlsx); Format alone gives a summary.
type DirectoryFormatter interface {
	Formatter
	FormatDir(res *report.Result, dir string) error
}

var registry = struct {
	sync.RWMutex
	byName map[string]Formatter
}{byName: make(map[string]Formatter)}

// RegisterFormatter adds f under f.Name(), replacing any earlier entry.
func RegisterFormatter(f Formatter) {
	registry.Lock()
	defer registry.Unlock()
	registry.byName[f.Name()] = f
}

// GetFormatter looks a formatter up by name.
func GetFormatter(name string) (Formatter, error) {
	registry.RLock()
	defer registry.RUnlock()
	if f, ok := registry.byName[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown format: %q (available: %s)",
		name, strings.Join(slices.Sorted(maps.Keys(registry.byName)), ", "))
}

// GetStreamFormatter is GetFormatter restricted to formats that fit in a
// single response body, for HTTP and MCP callers.
func GetStreamFormatter(name string) (Formatter, error) {
	f, err := GetFormatter(name)
	if err != nil {
		return nil, err
	}
	if _, isDir := f.(DirectoryFormatter); isDir {
		return nil, fmt.Errorf("format %q writes a directory", name)
	}
	return f, nil
}

// FormatNames lists registered formats alphabetically.
func FormatNames() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.byName))
}

func resetFmtForTesting() {
	registry.Lock()
	defer registry.Unlock()
	registry.byName = make(map[string]Formatter)
}
