package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, Validate(&cfg))
	assert.NoError(t, Validate(&Config{}))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Page:         "sidebar",
		TopN:         -1,
		OutputFormat: "pdf",
		ChartFormat:  "gif",
		Server:       ServerConfig{Addr: "8080"},
	}
	err := Validate(cfg)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "config validation failed")
	assert.Contains(t, msg, "page: unknown page \"sidebar\"")
	assert.Contains(t, msg, "top_n: must be between 0 and 100, got -1")
	assert.Contains(t, msg, "output_format:")
	assert.Contains(t, msg, "chart_format:")
	assert.Contains(t, msg, "server.addr:")
}

func TestValidate_TopNUpperBound(t *testing.T) {
	assert.NoError(t, Validate(&Config{TopN: MaxTopN}))
	assert.Error(t, Validate(&Config{TopN: MaxTopN + 1}))
}

func TestValidate_DuplicateColumns(t *testing.T) {
	cfg := &Config{Columns: dataset.Columns{Applicants: "Jumlah", Quota: " jumlah "}}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns.quota: header \" jumlah \" already used by columns.applicants")
}
