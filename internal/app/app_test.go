package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/servers"
)

// syncBuffer guards a bytes.Buffer written by transport workers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func responses(t *testing.T, out string) map[int]rpcResponse {
	t.Helper()
	got := map[int]rpcResponse{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var r rpcResponse
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("bad response line %q: %v", line, err)
		}
		got[r.ID] = r
	}
	return got
}

func variant(t *testing.T, name string) servers.Variant {
	t.Helper()
	v, ok := servers.Lookup(name)
	if !ok {
		t.Fatalf("variant %s not found", name)
	}
	return v
}

func TestBuild(t *testing.T) {
	srv, res := Build(variant(t, "math-utils"), common.NewSilentLogger())

	if !srv.Frozen() {
		t.Error("expected server to be frozen after Build")
	}
	if res.Failed() != 0 {
		t.Errorf("unexpected failures: %+v", res.Failures)
	}
	if srv.Len() != 72 || res.Registered != 72 {
		t.Errorf("expected 72 tools, got %d (registered %d)", srv.Len(), res.Registered)
	}
	if srv.Name() != "math-utils" || srv.Version() != "1.0.0" {
		t.Errorf("unexpected identity %s %s", srv.Name(), srv.Version())
	}
}

func TestServe_StopsOnEOF(t *testing.T) {
	srv, _ := Build(variant(t, "arithmetic-math-utils"), common.NewSilentLogger())

	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"add","arguments":{"array":[1,2,3.5]}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"divide","arguments":{"a":1,"b":0}}}`,
	}, "\n") + "\n")
	out := &syncBuffer{}

	if err := Serve(context.Background(), srv, common.NewSilentLogger(), in, out); err != nil {
		t.Fatalf("Serve returned %v", err)
	}

	got := responses(t, out.String())

	var init struct {
		ServerInfo struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
		Instructions string `json:"instructions"`
	}
	if err := json.Unmarshal(got[1].Result, &init); err != nil {
		t.Fatalf("initialize result: %v", err)
	}
	if init.ServerInfo.Name != "arithmetic-math-utils" || init.ServerInfo.Version != "1.0.0" {
		t.Errorf("unexpected server info %+v", init.ServerInfo)
	}
	if !strings.Contains(init.Instructions, "Arithmetic") {
		t.Error("expected instructions in initialize result")
	}

	var list struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(got[2].Result, &list); err != nil {
		t.Fatalf("tools/list result: %v", err)
	}
	if len(list.Tools) != 21 {
		t.Errorf("expected 21 tools, got %d", len(list.Tools))
	}

	if !strings.Contains(string(got[3].Result), `"text":"6.5"`) {
		t.Errorf("unexpected add result: %s", got[3].Result)
	}
	if !strings.Contains(string(got[4].Result), `"isError":true`) {
		t.Errorf("expected divide by zero to be a tool error: %s", got[4].Result)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	srv, _ := Build(variant(t, "random-generator"), common.NewSilentLogger())

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, common.NewSilentLogger(), pr, io.Discard)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancellation")
	}
}

func TestRun_MalformedInputGetsParseError(t *testing.T) {
	in := strings.NewReader("not json\n")
	out := &syncBuffer{}

	if err := Run(context.Background(), variant(t, "text-utils"), common.NewSilentLogger(), in, out); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if !strings.Contains(out.String(), "Parse error") {
		t.Errorf("expected parse error response, got %q", out.String())
	}
}

func TestStdioOptions(t *testing.T) {
	logger := common.NewSilentLogger()

	if got := len(StdioOptions(common.ServerConfig{}, logger)); got != 1 {
		t.Errorf("expected only the error logger option, got %d", got)
	}
	if got := len(StdioOptions(common.ServerConfig{WorkerPoolSize: 2, QueueSize: 10}, logger)); got != 3 {
		t.Errorf("expected 3 options, got %d", got)
	}
}

func TestErrorLogWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &errorLogWriter{logger: common.NewLoggerWithOutput("debug", &buf)}

	n, err := w.Write([]byte("Tool call queue full\n"))
	if err != nil || n != len("Tool call queue full\n") {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if !strings.Contains(buf.String(), "Tool call queue full") {
		t.Errorf("expected message in log output, got %q", buf.String())
	}
}
