package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/adapters/file"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const history = `
draws:
  - date: 2025-01-03
    numbers: [1, 2, 3, 4, 5]
  - date: 2025-01-07
    numbers: [2, 3, 4, 5, 6]
  - date: 2025-01-10
    numbers: [1, 2, 3, 4, 5]
  - date: 2025-01-14
    numbers: [1, 2, 3, 4, 99]
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte(history), 0644))

	cfg := config.Default()
	cfg.History.Path = path
	cfg.Store.Dir = filepath.Join(dir, "batches")
	cfg.Model.RandSeed = 7
	cfg.Model.SkipInvalid = true
	cfg.Log.Level = "error"
	return cfg
}

func TestRunGenerate_Plain(t *testing.T) {
	var out bytes.Buffer
	err := RunGenerate(context.Background(), testConfig(t), GenerateOptions{Count: 3, Format: FormatPlain}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	// The pool's top number (most outgoing transitions) seeds the first combination.
	assert.Equal(t, "[2 3 4 5 6]", lines[0])
}

func TestRunGenerate_SeedJSON(t *testing.T) {
	var out bytes.Buffer
	err := RunGenerate(context.Background(), testConfig(t), GenerateOptions{Seed: []int{2}, Size: 3, Format: FormatJSON}, &out)
	require.NoError(t, err)

	var b domain.Batch
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	require.Len(t, b.Combinations, 1)
	assert.Equal(t, []int{2, 3, 4}, b.Combinations[0].Numbers())
	assert.Equal(t, uint64(7), b.RandSeed)
}

func TestRunGenerate_SaveAndWarn(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	err := RunGenerate(context.Background(), cfg, GenerateOptions{
		Count:            4,
		Save:             true,
		BatchID:          "weekly",
		Format:           FormatMarkdown,
		OveruseThreshold: 2,
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "batch `weekly`")
	assert.Contains(t, out.String(), "warning: ")

	saved, err := file.NewStore(cfg.Store.Dir).Load(context.Background(), "weekly")
	require.NoError(t, err)
	assert.Len(t, saved.Combinations, 4)
}

func TestRunGenerate_Errors(t *testing.T) {
	cfg := testConfig(t)
	err := RunGenerate(context.Background(), cfg, GenerateOptions{Count: 1, Size: 51}, io.Discard)
	assert.ErrorIs(t, err, domain.ErrDomainExhaustion)

	cfg.Model.SkipInvalid = false
	err = RunGenerate(context.Background(), cfg, GenerateOptions{Count: 1}, io.Discard)
	assert.ErrorIs(t, err, domain.ErrInvalidDrawFormat)

	cfg.History.Path = ""
	err = RunGenerate(context.Background(), cfg, GenerateOptions{Count: 1}, io.Discard)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestRunInspect(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, RunInspect(ctx, cfg, InspectOptions{Format: FormatJSON}, &out))
	assert.Contains(t, out.String(), `"draws": 3`)
	assert.Contains(t, out.String(), `"skipped": 1`)

	out.Reset()
	require.NoError(t, RunInspect(ctx, cfg, InspectOptions{Number: 2, Level: "direct", Format: FormatPlain}, &out))
	assert.Equal(t, "warning: 1 invalid records skipped\n3\n", out.String())

	out.Reset()
	require.NoError(t, RunInspect(ctx, cfg, InspectOptions{Number: 2, Format: FormatMermaid, Highlight: []int{3}}, &out))
	assert.Contains(t, out.String(), "graph LR")
	assert.Contains(t, out.String(), "class n3 selected;")

	out.Reset()
	require.NoError(t, RunInspect(ctx, cfg, InspectOptions{Number: 2, Format: FormatMarkdown}, &out))
	assert.Contains(t, out.String(), "# Transitions of 2")

	assert.Error(t, RunInspect(ctx, cfg, InspectOptions{Number: 51}, io.Discard))
	assert.Error(t, RunInspect(ctx, cfg, InspectOptions{Number: 2, Level: "diagonal"}, io.Discard))
}

func TestRunBacktest(t *testing.T) {
	var out bytes.Buffer
	err := RunBacktest(context.Background(), testConfig(t), BacktestOptions{TestRatio: 0.5, Combinations: 2, Format: FormatJSON}, &out)
	require.NoError(t, err)

	var report struct {
		TrainSize int `json:"train_size"`
		TestSize  int `json:"test_size"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.TrainSize)
	assert.Equal(t, 1, report.TestSize, "the invalid newest draw is skipped")
}

func TestNewServerHandler_Metrics(t *testing.T) {
	handler, closeStore, err := NewServerHandler(context.Background(), testConfig(t), "test")
	require.NoError(t, err)
	defer closeStore()

	req := httptest.NewRequest("GET", "/combinations?count=2", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "markov_tables_built_total 1")
	assert.Contains(t, w.Body.String(), "markov_combinations_generated_total 2")
}

func TestRunServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- RunServe(ctx, testConfig(t), ServeOptions{Version: "test", Listener: ln, Ready: ready})
	}()

	addr := <-ready
	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
