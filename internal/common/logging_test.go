package common

import (
	"bytes"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestNewLogger_EventsDoNotPanic(t *testing.T) {
	logger := NewLogger("error")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	logger.Info().Str("key", "value").Msg("info")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error")
	logger.Debug().Bool("ok", true).Msg("debug")
}

func TestLogOutputs(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggingConfig
		want []string
	}{
		{"empty defaults to console", LoggingConfig{}, []string{"console"}},
		{"explicit outputs kept", LoggingConfig{Outputs: []string{"file"}}, []string{"file"}},
		{"file path adds file", LoggingConfig{FilePath: "x.log"}, []string{"console", "file"}},
		{"file not duplicated", LoggingConfig{Outputs: []string{"file"}, FilePath: "x.log"}, []string{"file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logOutputs(tt.cfg); !slices.Equal(got, tt.want) {
				t.Errorf("logOutputs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogOutputs_DoesNotMutateConfig(t *testing.T) {
	cfg := LoggingConfig{Outputs: make([]string, 1, 4), FilePath: "x.log"}
	cfg.Outputs[0] = "console"
	logOutputs(cfg)
	if got := cfg.Outputs[:2][1]; got != "" {
		t.Errorf("config backing array was written: %q", got)
	}
}

func TestFileWriterConfig_Defaults(t *testing.T) {
	wc := fileWriterConfig(LoggingConfig{})
	if wc.FileName != defaultLogFile || wc.MaxSize != defaultMaxBytes || wc.MaxBackups != defaultMaxBackups {
		t.Errorf("unexpected defaults: %+v", wc)
	}

	wc = fileWriterConfig(LoggingConfig{FilePath: "a.log", MaxSizeMB: 2, MaxBackups: 7})
	if wc.FileName != "a.log" || wc.MaxSize != 2<<20 || wc.MaxBackups != 7 {
		t.Errorf("config not applied: %+v", wc)
	}
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{
		Level:    "warn",
		FilePath: t.TempDir() + "/minimcp.log",
	})
	logger.Warn().Str("tool", "add").Msg("file output")
}

func TestNewLoggerWithOutput_RendersSortedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Warn().Str("tool", "divide").Str("server", "arithmetic").Msg("tool failed")

	if !strings.Contains(buf.String(), "tool failed server=arithmetic tool=divide") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestNewLoggerWithOutput_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", &buf)
	logger.Info().Msg("below threshold")
	logger.Error().Msg("above threshold")

	if strings.Contains(buf.String(), "below threshold") {
		t.Errorf("info event passed a warn logger: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "above threshold") {
		t.Errorf("error event missing: %q", buf.String())
	}
}

func TestNewLoggerWithOutput_WritesLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("server", "math-utils").Msg("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestNewSilentLogger_BypassesGlobalWriters(t *testing.T) {
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Msg("dropped")
	silent.Error().Msg("also dropped")

	if buf.Len() > 0 {
		t.Errorf("silent logger reached the global writer: %q", buf.String())
	}
}

func TestNewLogger_KeepsStdoutClean(t *testing.T) {
	saved := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLogger("info")
	logger.Info().Msg("stderr only")
	logger.Error().Msg("stderr only")

	w.Close()
	os.Stdout = saved

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()
	if buf.Len() > 0 {
		t.Errorf("logger wrote to stdout: %q", buf.String())
	}
}

func TestWithCorrelationId(t *testing.T) {
	logger := NewLogger("info")
	if tagged := logger.WithCorrelationId("call-123"); tagged == nil || tagged == logger {
		t.Error("WithCorrelationId should return a distinct logger")
	}
}

func TestInitLogging_FirstCallWins(t *testing.T) {
	first := InitLogging(LoggingConfig{Level: "warn"})
	second := InitLogging(LoggingConfig{Level: "debug", FilePath: t.TempDir() + "/ignored.log"})
	if first == nil || first != second {
		t.Error("InitLogging should return the logger from the first call")
	}
}
