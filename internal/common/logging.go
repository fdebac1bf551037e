// Package common holds the logging, configuration and version plumbing
// shared by every minimcp server.
package common

import (
	"encoding/json"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const (
	// DefaultLogLevel applies when the config names no level.
	DefaultLogLevel = "warn"

	defaultLogFile    = "logs/minimcp.log"
	defaultMaxBytes   = 500 * 1024
	defaultMaxBackups = 5
	logTimeFormat     = "2006-01-02T15:04:05Z07:00"
)

// Logger is the arbor logger handed to every component.
type Logger struct {
	arbor.ILogger
}

// NewLogger returns a console logger at level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{Level: level})
}

// NewLoggerFromConfig builds a logger from cfg. Console output goes to
// stderr because stdout is the protocol channel.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	l := arbor.NewLogger()
	for _, output := range logOutputs(cfg) {
		switch output {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: logTimeFormat,
			})
		case "file":
			l = l.WithFileWriter(fileWriterConfig(cfg))
		}
	}

	level := cfg.Level
	if level == "" {
		level = DefaultLogLevel
	}
	return &Logger{ILogger: l.WithLevelFromString(level)}
}

// logOutputs resolves the writer list; a file path implies "file".
func logOutputs(cfg LoggingConfig) []string {
	outputs := slices.Clone(cfg.Outputs)
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}
	if cfg.FilePath != "" && !slices.Contains(outputs, "file") {
		outputs = append(outputs, "file")
	}
	return outputs
}

func fileWriterConfig(cfg LoggingConfig) models.WriterConfiguration {
	wc := models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   cfg.FilePath,
		MaxSize:    int64(cfg.MaxSizeMB) << 20,
		MaxBackups: cfg.MaxBackups,
		TimeFormat: logTimeFormat,
	}
	if wc.FileName == "" {
		wc.FileName = defaultLogFile
	}
	if wc.MaxSize <= 0 {
		wc.MaxSize = defaultMaxBytes
	}
	if wc.MaxBackups <= 0 {
		wc.MaxBackups = defaultMaxBackups
	}
	return wc
}

// NewLoggerWithOutput returns a logger that renders each event as one
// "message key=value ..." line on w. The writer is installed as arbor's
// global console writer.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &lineWriter{out: w, min: log.TraceLevel})
	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{Type: models.LogWriterTypeMemory}).
		WithLevelFromString(level)
	return &Logger{ILogger: l}
}

// NewSilentLogger returns a logger that drops everything, including what
// globally registered writers would otherwise receive.
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewLogger().WithWriters([]writers.IWriter{nullWriter{}})}
}

// WithCorrelationId tags subsequent events with id.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

var (
	initOnce    sync.Once
	initialized *Logger
)

// InitLogging builds the process logger on first use. Every later call
// returns that same logger and ignores cfg.
func InitLogging(cfg LoggingConfig) *Logger {
	initOnce.Do(func() { initialized = NewLoggerFromConfig(cfg) })
	return initialized
}

type lineWriter struct {
	mu  sync.Mutex
	out io.Writer
	min log.Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.min {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, formatEvent(evt)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *lineWriter) WithLevel(level log.Level) writers.IWriter {
	w.min = level
	return w
}

func (w *lineWriter) GetFilePath() string { return "" }
func (w *lineWriter) Close() error        { return nil }

// formatEvent renders fields in key order.
func formatEvent(evt models.LogEvent) string {
	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(evt.Message)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fieldString(evt.Fields[k]))
	}
	if evt.Error != "" {
		b.WriteString(" error=")
		b.WriteString(evt.Error)
	}
	b.WriteByte('\n')
	return b.String()
}

func fieldString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(data)
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error)         { return len(p), nil }
func (nullWriter) WithLevel(log.Level) writers.IWriter { return nullWriter{} }
func (nullWriter) GetFilePath() string                 { return "" }
func (nullWriter) Close() error                        { return nil }
