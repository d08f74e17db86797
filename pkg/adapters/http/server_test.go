package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/adapters/file"
	httpadapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/session"
	"github.com/aretw0/turing/pkg/table"
)

func newHandler(t *testing.T, opts ...httpadapter.Option) http.Handler {
	t.Helper()
	programs := catalog.Default()
	full := catalog.BinaryIncrement()
	programs.Register(&catalog.Program{
		Name:      "no-overflow",
		Start:     full.Start,
		HeadAtEnd: true,
		Table:     table.New(full.Table.Rules()[:2]...),
	})
	mgr := session.NewManager(memory.NewStore(), programs, session.WithIDGenerator(func() string { return "run-1" }))
	return httpadapter.NewHandler(mgr, opts...)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeRecord(t *testing.T, w *httptest.ResponseRecorder) domain.RunRecord {
	t.Helper()
	var rec domain.RunRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	return rec
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"turing-http"`)
}

func TestMachines(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/machines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []httpadapter.MachineSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 4)
	assert.Equal(t, "binary-increment", list[0].Name)
	assert.Equal(t, 3, list[0].Rules)

	w = do(t, h, http.MethodGet, "/machines/binary-increment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail httpadapter.MachineDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, []string{"Do"}, detail.States)
	assert.Equal(t, httpadapter.RuleView{State: "Do", Read: "_", Write: "1", Move: "S", Next: "Stop", Accept: true}, detail.Table[2])

	w = do(t, h, http.MethodGet, "/machines/binary-increment/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph LR")

	w = do(t, h, http.MethodGet, "/machines/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunLifecycle(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/runs", httpadapter.StartRunRequest{Machine: "binary-increment", Tape: "0111", MaxSteps: 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeRecord(t, w)
	assert.Equal(t, "run-1", rec.ID)
	assert.Equal(t, 1, rec.Steps)
	assert.False(t, rec.Halted)

	w = do(t, h, http.MethodPost, "/runs/run-1/step?n=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rec = decodeRecord(t, w)
	assert.True(t, rec.Halted)
	assert.Equal(t, "1000", rec.Tape)
	assert.Equal(t, 4, rec.Steps)

	w = do(t, h, http.MethodGet, "/runs", nil)
	assert.JSONEq(t, `{"runs":["run-1"]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/runs/run-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", decodeRecord(t, w).Tape)

	w = do(t, h, http.MethodDelete, "/runs/run-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/runs/run-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodDelete, "/runs/run-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartRun_Errors(t *testing.T) {
	h := newHandler(t)
	head := 9

	tests := []struct {
		name string
		body any
		code int
	}{
		{"Unknown Machine", httpadapter.StartRunRequest{Machine: "nope", Tape: "0"}, http.StatusNotFound},
		{"Missing Machine", httpadapter.StartRunRequest{Tape: "0"}, http.StatusBadRequest},
		{"Bad Tape", httpadapter.StartRunRequest{Machine: "binary-increment", Tape: "2"}, http.StatusBadRequest},
		{"Head Out Of Bounds", httpadapter.StartRunRequest{Machine: "binary-increment", Tape: "01", Head: &head}, http.StatusBadRequest},
		{"Negative Budget", httpadapter.StartRunRequest{Machine: "binary-increment", Tape: "01", MaxSteps: -1}, http.StatusBadRequest},
		{"Malformed JSON", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/runs", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestStartRun_UndefinedTransition(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/runs", httpadapter.StartRunRequest{Machine: "no-overflow", Tape: "11"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	rec := decodeRecord(t, w)
	assert.Equal(t, "_00", rec.Tape)
	assert.Contains(t, rec.Error, "undefined transition")

	// The record was saved.
	w = do(t, h, http.MethodGet, "/runs/run-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepRun_InvalidCount(t *testing.T) {
	h := newHandler(t)
	for _, n := range []string{"0", "-3", "many"} {
		w := do(t, h, http.MethodPost, "/runs/run-1/step?n="+n, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, n)
	}
	w := do(t, h, http.MethodPost, "/runs/missing/step", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRun_InvalidID(t *testing.T) {
	mgr := session.NewManager(file.New(t.TempDir()), catalog.Default())
	h := httpadapter.NewHandler(mgr)

	w := do(t, h, http.MethodGet, "/runs/..", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, http.MethodDelete, "/runs/..", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, http.MethodGet, "/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	mgr := session.NewManager(memory.NewStore(), catalog.Default(), session.WithObserver(metrics))
	h := httpadapter.NewHandler(mgr, httpadapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	w := do(t, h, http.MethodPost, "/runs", httpadapter.StartRunRequest{Machine: "busy-beaver-2", Tape: "_"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `turing_steps_total{machine="busy-beaver-2"} 6`)
	assert.Contains(t, w.Body.String(), `turing_halts_total{machine="busy-beaver-2"} 1`)
}

func TestCORS(t *testing.T) {
	h := newHandler(t)
	w := do(t, h, http.MethodOptions, "/runs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/runs", "application/json",
		strings.NewReader(`{"machine":"busy-beaver-2","tape":"_","max_steps":1}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/runs/run-1/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	lines := bufio.NewScanner(stream.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())
	require.True(t, lines.Scan())
	assert.Equal(t, "data: connected", lines.Text())

	resp, err = http.Post(srv.URL+"/runs/run-1/step", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: ") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var rec domain.RunRecord
	require.NoError(t, json.Unmarshal([]byte(data), &rec))
	assert.Equal(t, "run-1", rec.ID)
	assert.Equal(t, 2, rec.Steps)
}
