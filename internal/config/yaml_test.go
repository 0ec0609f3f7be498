// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.DataFile)
	assert.Zero(t, cfg.TopN)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	content := `
data_file: data/snmptn_2022.xlsx
page: by-major
top_n: 5
output_format: markdown
chart_format: png
columns:
  applicants: pendaftar
server:
  addr: "127.0.0.1:9090"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "data/snmptn_2022.xlsx", cfg.DataFile)
	assert.Equal(t, "by-major", cfg.Page)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "png", cfg.ChartFormat)
	assert.Equal(t, "pendaftar", cfg.Columns.Applicants)
	assert.Empty(t, cfg.Columns.Quota)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{{invalid yaml"), 0o600))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(""), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFile_MissingIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "custom.yaml"))
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	orig := Defaults()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &orig))
	assert.Contains(t, buf.String(), "data_file: snmptn_all.xlsx\n")
	assert.NotContains(t, buf.String(), "split_trend")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, *got)
}

func TestWrite_EmptyConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Config{}))
	assert.Equal(t, "{}\n", buf.String())
}

func TestLoadRaw_MissingFile(t *testing.T) {
	m, err := LoadRaw(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestLoadRaw_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page: by-major\ntop_n: 5\ncolumns:\n  quota: kursi\n"), 0o600))

	m, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "by-major", m["page"])
	assert.Equal(t, 5, m["top_n"])
	assert.Equal(t, map[string]any{"quota": "kursi"}, m["columns"])
}

func TestLoadRaw_InvalidYAMLAndEmpty(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{invalid yaml"), 0o600))
	_, err := LoadRaw(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	m, err := LoadRaw(empty)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestWriteFile_CreatesParentDirsAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yaml")

	require.NoError(t, WriteFile(path, map[string]any{"output_format": "json"}))
	require.NoError(t, WriteFile(path, map[string]any{"output_format": "markdown"}))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"top_n":   7,
		"columns": map[string]any{"quota": "kursi"},
		"unknown": "kept out",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopN)
	assert.Equal(t, "kursi", cfg.Columns.Quota)

	_, err = Decode(map[string]any{"top_n": "many"})
	assert.Error(t, err)
}
