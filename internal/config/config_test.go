package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// TestServerConfig_Defaults verifies ServerConfig has sensible defaults
func TestServerConfig_Defaults(t *testing.T) {
	cfg := NewServerConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.MaxGames != 1000 {
		t.Errorf("MaxGames = %d, want 1000", cfg.MaxGames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default ServerConfig invalid: %v", err)
	}
}

// TestRulesConfig_Defaults verifies moves are judged strictly by default
func TestRulesConfig_Defaults(t *testing.T) {
	cfg := NewRulesConfig()

	if !cfg.StrictLegality {
		t.Error("StrictLegality should be true by default")
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
}

// TestRulesConfig_NewRand verifies a fixed seed replays the same sequence
func TestRulesConfig_NewRand(t *testing.T) {
	cfg := &RulesConfig{Seed: 7}
	a, b := cfg.NewRand(), cfg.NewRand()
	for i := 0; i < 10; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

// TestValidate verifies every sub-config is checked
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty listen address", func(c *Config) { c.Server.ListenAddr = "" }, true},
		{"zero max games", func(c *Config) { c.Server.MaxGames = 0 }, true},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, true},
		{"json log format", func(c *Config) { c.Log.Format = LogFormatJSON }, false},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, true},
		{"negative buffer", func(c *Config) { c.Batch.BufferSize = -1 }, true},
		{"negative duplicate capacity", func(c *Config) { c.Batch.DuplicateCapacity = -1 }, true},
		{"inverted move bounds", func(c *Config) {
			c.Filter.CheckMoveBounds = true
			c.Filter.LowerMoveBound = 10
			c.Filter.UpperMoveBound = 5
		}, true},
		{"move bounds", func(c *Config) {
			c.Filter.CheckMoveBounds = true
			c.Filter.LowerMoveBound = 5
			c.Filter.UpperMoveBound = 5
		}, false},
		{"checkmate and stalemate", func(c *Config) {
			c.Filter.MatchCheckmate = true
			c.Filter.MatchStalemate = true
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestFilterConfig_Defaults verifies every filter starts disabled
func TestFilterConfig_Defaults(t *testing.T) {
	cfg := NewFilterConfig()
	if cfg.Active() {
		t.Error("Active() should be false by default")
	}
	cfg.CheckRepetition = true
	if !cfg.Active() {
		t.Error("Active() should be true with a condition enabled")
	}
	cfg = NewFilterConfig()
	cfg.MaxMatches = 3
	if cfg.Active() {
		t.Error("MaxMatches alone is not a condition")
	}
}

// TestBatchConfig_WorkerCount verifies zero workers falls back to GOMAXPROCS
func TestBatchConfig_WorkerCount(t *testing.T) {
	cfg := NewBatchConfig()
	if cfg.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %d, want >= 1", cfg.WorkerCount())
	}
	cfg.Workers = 3
	if cfg.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %d, want 3", cfg.WorkerCount())
	}
}

// TestLogConfig_NewLogger verifies the logger honours level and format
func TestLogConfig_NewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := &LogConfig{Level: "warn", Format: LogFormatJSON}

	logger, err := cfg.NewLogger(buf)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("game", "abc").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(out, `"game":"abc"`) {
		t.Errorf("output %q lacks structured field", out)
	}

	if _, err := (&LogConfig{Level: "nope", Format: LogFormatJSON}).NewLogger(buf); err == nil {
		t.Error("NewLogger accepted an unknown level")
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithListenAddr("127.0.0.1:9000").
		WithMaxGames(5).
		WithShutdownTimeout(time.Second).
		WithLogLevel("debug").
		WithLogFormat(LogFormatJSON).
		WithStrictLegality(false).
		WithSeed(42).
		WithWorkers(4).
		WithBufferSize(8).
		WithJSONOutput(true).
		WithVerbose(true).
		WithOutput(buf).
		Build()

	if cfg.Server.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.MaxGames != 5 || cfg.Server.ShutdownTimeout != time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Rules.StrictLegality || cfg.Rules.Seed != 42 {
		t.Errorf("Rules = %+v", cfg.Rules)
	}
	if cfg.Batch.Workers != 4 || cfg.Batch.BufferSize != 8 {
		t.Errorf("Batch = %+v", cfg.Batch)
	}
	if !cfg.Output.JSONFormat || !cfg.Output.Verbose {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.OutputFile != buf {
		t.Error("WithOutput did not set OutputFile")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}
