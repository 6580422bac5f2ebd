// Package config provides configuration for the chess rules server and CLI.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration. Each concern lives in its own
// sub-config so components receive only the part they use.
type Config struct {
	Server *ServerConfig
	Log    *LogConfig
	Rules  *RulesConfig
	Batch  *BatchConfig
	Output *OutputConfig
	Filter *FilterConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:     NewServerConfig(),
		Log:        NewLogConfig(),
		Rules:      NewRulesConfig(),
		Batch:      NewBatchConfig(),
		Output:     NewOutputConfig(),
		Filter:     NewFilterConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer reports are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every sub-config and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Batch.Validate(); err != nil {
		return err
	}
	return c.Filter.Validate()
}
