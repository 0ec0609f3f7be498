// Package config handles .admisi.yaml configuration files.
package config

import "github.com/admisi-dashboard/admisi/internal/dataset"

// Config represents the contents of a .admisi.yaml file.
type Config struct {
	DataFile     string          `yaml:"data_file,omitempty"`
	Page         string          `yaml:"page,omitempty"`
	TopN         int             `yaml:"top_n,omitempty"`
	OutputFormat string          `yaml:"output_format,omitempty"`
	ChartFormat  string          `yaml:"chart_format,omitempty"`
	SplitTrend   bool            `yaml:"split_trend,omitempty"`
	Columns      dataset.Columns `yaml:"columns,omitempty"`
	Server       ServerConfig    `yaml:"server,omitempty"`
}

// ServerConfig holds settings for the HTTP dashboard.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".admisi.yaml"

// Built-in defaults applied beneath every other source.
const (
	DefaultDataFile = "snmptn_all.xlsx"
	DefaultPage     = "overview"
	DefaultTopN     = 10
	DefaultFormat   = "text"
	DefaultChart    = "svg"
	DefaultAddr     = ":8080"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		DataFile:     DefaultDataFile,
		Page:         DefaultPage,
		TopN:         DefaultTopN,
		OutputFormat: DefaultFormat,
		ChartFormat:  DefaultChart,
		Columns:      dataset.DefaultColumns(),
		Server:       ServerConfig{Addr: DefaultAddr},
	}
}
