package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/pkg/adapters/file"
	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	return newConfiguredServer(t, Config{})
}

func newConfiguredServer(t *testing.T, cfg Config) (*Server, *memory.Store) {
	t.Helper()
	lib := memory.NewSourceFS(map[string]string{
		"/lib/a.h":        "#include \"b.h\"\nint a;\n",
		"/lib/b.h":        "int b;\n",
		"/lib/loop.h":     "#include \"loop.h\"\n",
		"/etc/secret.txt": "top secret\n",
	})
	store := memory.NewStore()
	cfg.Store = store
	cfg.Options = []exinc.Option{exinc.WithFS(lib)}
	cfg.Registry = prometheus.NewRegistry()
	if cfg.Roots == nil {
		cfg.Roots = []string{"/lib"}
	}
	return NewServer(cfg), store
}

func postExpand(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/expand", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) domain.Report {
	t.Helper()
	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report), w.Body.String())
	return report
}

func TestExpand_Success(t *testing.T) {
	srv, store := newTestServer(t)
	h := srv.Handler()

	w := postExpand(t, h, ExpandRequest{Text: "#include \"a.h\"\nint main() {}\n", Paths: &[]string{"/lib"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	report := decodeReport(t, w)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.HasErrors)
	assert.Equal(t, "int b;\nint a;\nint main() {}\n", report.Output)
	assert.Empty(t, report.Report)

	record, err := store.Load(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RootParent, record.Parent)
	assert.Equal(t, domain.PreprocessorInliner, record.Preprocessor)
}

func TestExpand_Diagnostics(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := postExpand(t, h, ExpandRequest{
		Text:   "#include \"loop.h\"\n#include \"gone.h\"\n",
		Parent: ptr("main.cpp"),
		Paths:  &[]string{"/lib"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeReport(t, w)
	assert.True(t, report.HasErrors)
	assert.Empty(t, report.Output)
	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, domain.KindCycle, report.Diagnostics[0].Kind)
	assert.Equal(t, domain.KindNotFound, report.Diagnostics[1].Kind)
	assert.Equal(t,
		"Found back-edge to file loop.h (on line 1 of file loop.h)\n"+
			"File gone.h could not be found (on line 2 of file main.cpp)",
		report.Report)
}

func TestExpand_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/expand", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postExpand(t, h, ExpandRequest{Text: "x", Preprocessor: ptr("cpp")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown preprocessor")
}

func TestExpansions_Lifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	id := decodeReport(t, postExpand(t, h, ExpandRequest{Text: "int x;\n"})).ID

	t.Run("Get", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/expansions/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
		report := decodeReport(t, w)
		assert.Equal(t, id, report.ID)
		assert.Equal(t, "int x;\n", report.Output)
	})

	t.Run("List", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/expansions", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body ExpansionList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{id}, body.Ids)
	})

	t.Run("Delete", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/expansions/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Get Unknown", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/expansions/"+id, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExpansions_FileStoreRejectsEscapingID(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), []byte(`{"id":"x","result":{"output":"top secret"}}`), 0644))
	h := NewHandler(Config{Store: file.New(filepath.Join(root, "a", "b")), Registry: prometheus.NewRegistry()})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/v1/expansions/..%2F..%2Fx", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
		assert.NotContains(t, w.Body.String(), "top secret")
	}
	assert.FileExists(t, filepath.Join(root, "x.json"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	postExpand(t, h, ExpandRequest{Text: "#include \"a.h\"\n", Paths: &[]string{"/lib"}})
	postExpand(t, h, ExpandRequest{Text: "#include \"nope.h\"\n"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "exinc_files_inlined_total 2")
	assert.Contains(t, body, `exinc_expansions_total{outcome="success"} 1`)
	assert.Contains(t, body, `exinc_expansions_total{outcome="diagnostics"} 1`)
	assert.Contains(t, body, `exinc_diagnostics_total{kind="file-not-found"} 1`)
	assert.Contains(t, body, "exinc_expansion_duration_seconds_count 2")
}

func TestHealthAndVersion(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, strings.TrimSpace(exinc.Version), body["version"])
}

func TestCORSPreflight(t *testing.T) {
	t.Run("Disabled By Default", func(t *testing.T) {
		srv, _ := newTestServer(t)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/expand", nil))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Configured Origin", func(t *testing.T) {
		srv, _ := newConfiguredServer(t, Config{AllowedOrigin: "*"})
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/expand", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestExpand_ConfinedToRoots(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	t.Run("Request Path Outside Roots", func(t *testing.T) {
		w := postExpand(t, h, map[string]any{
			"text":  "#include \"/etc/secret.txt\"\n",
			"paths": []string{"/"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "outside the allowed roots")
		assert.NotContains(t, w.Body.String(), "top secret")
	})

	t.Run("Absolute Include", func(t *testing.T) {
		w := postExpand(t, h, map[string]any{
			"text":  "#include \"/etc/secret.txt\"\n",
			"paths": []string{"/lib"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		report := decodeReport(t, w)
		assert.True(t, report.HasErrors)
		assert.NotContains(t, w.Body.String(), "top secret")
	})

	t.Run("Climbing Include", func(t *testing.T) {
		w := postExpand(t, h, ExpandRequest{Text: "#include \"../etc/secret.txt\"\n", Paths: &[]string{"/lib"}})
		require.Equal(t, http.StatusOK, w.Code)
		report := decodeReport(t, w)
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, domain.KindNotFound, report.Diagnostics[0].Kind)
		assert.NotContains(t, w.Body.String(), "top secret")
	})

	t.Run("Caide Refused", func(t *testing.T) {
		w := postExpand(t, h, ExpandRequest{Text: "x", Preprocessor: ptr(domain.PreprocessorCaide)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOpenAPI(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "/v1/expansions/{id}")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SwaggerUIBundle")

	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, swagger.Validate(context.Background()))
	for _, p := range []string{"/v1/expand", "/v1/expansions", "/v1/expansions/{id}", "/v1/events", "/healthz", "/version"} {
		assert.NotNil(t, swagger.Paths.Value(p), p)
	}
}

func TestSubscribeEvents(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	assert.Equal(t, "event: ping", scanner.Text(), "the ping is sent once subscribed")

	id := decodeReport(t, postExpand(t, h, ExpandRequest{
		Text:  "#include \"a.h\"\n#include \"x.h\"\n",
		Paths: &[]string{"/lib"},
	})).ID

	var events []Event
	for scanner.Scan() {
		line, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok || line == "connected" {
			continue
		}
		var e Event
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		events = append(events, e)
		if e.Type == EventTypeFinished {
			break
		}
	}

	var types []EventType
	for _, e := range events {
		assert.Equal(t, id, e.ExpansionId)
		types = append(types, e.Type)
	}
	want := []EventType{
		EventTypeFileEnter, EventTypeFileEnter, EventTypeFileLeave, EventTypeFileLeave,
		EventTypeDiagnostic, EventTypeFinished,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("event sequence mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "/lib/a.h", events[0].File.Path)
	assert.Equal(t, 1, events[0].File.Depth)
	assert.Equal(t, "/lib/b.h", events[1].File.Path)
	assert.Equal(t, 2, events[1].File.Depth)
	assert.Equal(t, "/lib/b.h", events[2].File.Path, "the innermost file is left first")
	assert.Equal(t, "/lib/a.h", events[3].File.Path)
	assert.Equal(t, "x.h", events[4].Diagnostic.File)
	require.NotNil(t, events[5].Outcome)
	assert.True(t, events[5].Outcome.HasErrors)
	assert.Nil(t, events[5].Outcome.Output)
}

func TestSubscribeEvents_FilterByExpansion(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/events?expansion_id=mine", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())

	hooks := srv.Streams.Hooks("other")
	hooks.OnDiagnostic(ctx, domain.Diagnostic{Kind: domain.KindNotFound, File: "x.h", Line: 1, Parent: "main.cpp"})
	srv.Streams.Finish("mine", domain.Succeeded("int x;\n"))

	for scanner.Scan() {
		line, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok || line == "connected" {
			continue
		}
		var e Event
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		assert.Equal(t, "mine", e.ExpansionId)
		assert.Equal(t, EventTypeFinished, e.Type)
		return
	}
	t.Fatal("stream closed before the filtered event")
}
