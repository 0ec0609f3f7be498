// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the admissions dashboard queries as tools over stdio.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// workbookExts are the spreadsheet formats the loader can read.
var workbookExts = map[string]bool{".xlsx": true, ".xlsm": true, ".xltx": true, ".xltm": true}

// ResolveDataFile resolves a workbook path to an absolute, symlink-free
// path. It returns a *dataset.LoadError if the path does not exist, is a
// directory, or is not an Excel workbook.
func ResolveDataFile(path string) (string, error) {
	if path == "" {
		return "", &dataset.LoadError{Path: path, Err: fmt.Errorf("no data file given")}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", &dataset.LoadError{Path: path, Err: err}
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", &dataset.LoadError{Path: path, Err: err}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", &dataset.LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &dataset.LoadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	if !workbookExts[strings.ToLower(filepath.Ext(absPath))] {
		return "", &dataset.LoadError{Path: path, Err: fmt.Errorf("not an Excel workbook")}
	}
	return absPath, nil
}

// Open resolves path and returns a cache over the workbook there.
func Open(path string, cols dataset.Columns) (*dataset.Cache, error) {
	abs, err := ResolveDataFile(path)
	if err != nil {
		return nil, err
	}
	return dataset.NewCache(abs, cols), nil
}
