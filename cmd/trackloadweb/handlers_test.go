package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carbocation/trackload/history"
	"github.com/carbocation/trackload/ingest"
	"github.com/carbocation/trackload/pathref"
)

type fakeLoader map[string]string

func (f fakeLoader) LoadJSON(ctx context.Context, p pathref.Path) ([]byte, error) {
	body, ok := f[p.Handle]
	if !ok {
		return nil, fmt.Errorf("%s: not found", p.Handle)
	}

	return []byte(body), nil
}

func testGlobal(t *testing.T, loader ingest.JSONLoader) *Global {
	t.Helper()

	return &Global{
		Site:   "trackload",
		log:    log.New(ioutil.Discard, "", 0),
		loader: loader,
		Config: JSONConfig{Port: 9019},
	}
}

func TestIngestHandler(t *testing.T) {
	srv := httptest.NewServer(router(testGlobal(t, fakeLoader{})))
	defer srv.Close()

	body := `{"raw":["/data/chr1.fa","/data/chr1.fa.fai","/data/lonely.bam"],"data":"https://example.org/a.bed"}`
	resp, err := http.Post(srv.URL+"/ingest", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var report ingest.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}

	if len(report.Configs) != 2 {
		t.Errorf("Expected two configurations, got %+v", report.Configs)
	}
	if len(report.Errors) != 1 || report.Errors[0] != "data file lonely.bam is missing required index file" {
		t.Errorf("Unexpected errors %v", report.Errors)
	}
}

func TestIngestHandlerRejectsBadRequests(t *testing.T) {
	srv := httptest.NewServer(router(testGlobal(t, fakeLoader{})))
	defer srv.Close()

	for _, body := range []string{`{"raw":`, `{}`} {
		resp, err := http.Post(srv.URL+"/ingest", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestIngestHandlerRecordsHistory(t *testing.T) {
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := testGlobal(t, fakeLoader{"session.json": `{"genome":"hg38"}`})
	g.history = store

	srv := httptest.NewServer(router(g))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ingest", "application/json", strings.NewReader(`{"raw":["session.json"]}`))
	if err != nil {
		t.Fatal(err)
	}
	var report ingest.Report
	err = json.NewDecoder(resp.Body).Decode(&report)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if report.Session == nil || report.Session.Format != "json" {
		t.Fatalf("Expected a JSON session, got %+v", report)
	}

	resp, err = http.Get(srv.URL + "/history?limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var entries []history.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Session != "session.json" {
		t.Errorf("Unexpected history %+v", entries)
	}
}

func TestHistoryHandlerWithoutStore(t *testing.T) {
	srv := httptest.NewServer(router(testGlobal(t, fakeLoader{})))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/history")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestRegistryHandler(t *testing.T) {
	loader := fakeLoader{
		"/srv/registry.json":  `{"hg38": ["/srv/hg38/menu.json"]}`,
		"/srv/hg38/menu.json": `{"label": "Annotations", "tracks": [{"url": "https://example.org/genes.bed"}]}`,
	}

	g := testGlobal(t, loader)
	g.Config.RegistryPath = "/srv/registry.json"

	srv := httptest.NewServer(router(g))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/registry/hg38")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Genome string `json:"genome"`
		Menus  []struct {
			Label string `json:"label"`
		} `json:"menus"`
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Genome != "hg38" || len(out.Menus) != 1 || out.Menus[0].Label != "Annotations" {
		t.Errorf("Unexpected registry response %+v", out)
	}
}

func TestRegistryHandlerErrors(t *testing.T) {
	unconfigured := httptest.NewServer(router(testGlobal(t, fakeLoader{})))
	defer unconfigured.Close()

	resp, err := http.Get(unconfigured.URL + "/registry/hg38")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 without a registry, got %d", resp.StatusCode)
	}

	g := testGlobal(t, fakeLoader{})
	g.Config.RegistryPath = "/srv/absent.json"
	broken := httptest.NewServer(router(g))
	defer broken.Close()

	resp, err = http.Get(broken.URL + "/registry/hg38")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502 for an unreadable registry, got %d", resp.StatusCode)
	}
}

func TestIndexListsRoutes(t *testing.T) {
	srv := httptest.NewServer(router(testGlobal(t, fakeLoader{})))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out struct {
		Site   string            `json:"site"`
		Routes map[string]string `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Routes["ingest"] != "/ingest" || out.Routes["registry"] != "/registry/{genome}" {
		t.Errorf("Unexpected routes %v", out.Routes)
	}
}
