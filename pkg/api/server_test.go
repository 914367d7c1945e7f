package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlindgren/wirecut/pkg/graphio"
	"github.com/mlindgren/wirecut/pkg/store"
)

const bellManifest = `
name = "bell"

[[operations]]
gate = "H"
wires = ["0"]

[[operations]]
cut = true
wires = ["0"]

[[operations]]
gate = "CNOT"
wires = ["0", "1"]

[[measurements]]
type = "expval"

[[measurements.observable]]
name = "PauliZ"
wire = "0"
`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := NewServer(st, log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, st
}

func decodeGraph(t *testing.T, r io.Reader) graphio.Graph {
	t.Helper()
	var g graphio.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return g
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBuildGraph(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	g := decodeGraph(t, resp.Body)
	if g.Name != "bell" {
		t.Errorf("graph name = %q, want \"bell\"", g.Name)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("node count = %d, want 4", len(g.Nodes))
	}

	cuts := 0
	for _, n := range g.Nodes {
		if n.Kind == graphio.KindCut {
			cuts++
		}
	}
	if cuts != 1 {
		t.Errorf("cut marker count = %d, want 1", cuts)
	}
}

func TestBuildGraph_WithCut(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs?cut=true&validate=true", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	g := decodeGraph(t, resp.Body)
	if len(g.Nodes) != 5 {
		t.Errorf("node count = %d, want 5", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.Kind == graphio.KindCut {
			t.Error("cut marker survived ?cut=true")
		}
	}
}

func TestBuildGraph_InvalidManifest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs", "application/toml", strings.NewReader("[[operations]]\nwires = [\"0\"]\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "INVALID_MANIFEST" {
		t.Errorf("error code = %q, want INVALID_MANIFEST", body.Code)
	}
}

func TestPersistAndFetch(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs?name=bell&cut=true", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, want 200", resp.StatusCode)
	}

	// List
	resp, err = http.Get(ts.URL + "/v1/graphs")
	if err != nil {
		t.Fatal(err)
	}
	var listing struct {
		Graphs []string `json:"graphs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(listing.Graphs) != 1 || listing.Graphs[0] != "bell" {
		t.Errorf("listing = %v, want [bell]", listing.Graphs)
	}

	// Fetch
	resp, err = http.Get(ts.URL + "/v1/graphs/bell")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch status = %d, want 200", resp.StatusCode)
	}
	g := decodeGraph(t, resp.Body)
	if g.Name != "bell" {
		t.Errorf("fetched name = %q, want \"bell\"", g.Name)
	}
	if len(g.Nodes) != 5 {
		t.Errorf("fetched node count = %d, want 5", len(g.Nodes))
	}
}

func TestPersist_InvalidName(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs?name=../evil", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestFetch_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/graphs/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteGraph(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/graphs?name=bell", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/graphs/bell", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	names, err := st.List(req.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("store still holds %v after delete", names)
	}

	// Deleting again is a 404.
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestRender_DOT(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/render?format=dot&cut=true", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q, want text/vnd.graphviz", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "digraph circuit") {
		t.Error("render response is not a digraph")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/render?format=png", "application/toml", strings.NewReader(bellManifest))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestNoStoreConfigured(t *testing.T) {
	srv := NewServer(nil, log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/graphs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}
