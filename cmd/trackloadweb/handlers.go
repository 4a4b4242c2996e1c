package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"

	"github.com/carbocation/trackload/compileinfo"
	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/registry"
	"github.com/gorilla/mux"
)

// maxRequestBytes bounds the body of an ingestion request.
const maxRequestBytes = 1 << 20

type handler struct {
	*Global
	router *mux.Router
}

// ingestRequest accepts typed paths, raw strings to classify, or the
// data/index pair of a URL dialog, in any combination.
type ingestRequest struct {
	Paths []pathref.Path `json:"paths"`
	Raw   []string       `json:"raw"`
	Data  string         `json:"data"`
	Index string         `json:"index"`
}

func (req ingestRequest) batch() []pathref.Path {
	out := append([]pathref.Path{}, req.Paths...)
	for _, raw := range req.Raw {
		out = append(out, pathref.Parse(raw))
	}

	return append(out, pathref.Pair(req.Data, req.Index)...)
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	routes := make(map[string]string)
	for _, name := range []string{"ingest", "registry", "history", "version"} {
		route := h.router.Get(name)
		if route == nil {
			continue
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			continue
		}
		routes[name] = tpl
	}

	writeJSON(h, w, r, struct {
		Site   string            `json:"site"`
		Routes map[string]string `json:"routes"`
	}{h.Site, routes})
}

func (h *handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(h, w, r, compileinfo.Get())
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	goroutines := fmt.Sprintf("%d goroutines are currently active\n", runtime.NumGoroutine())

	w.Write([]byte(goroutines))
}

func (h *handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		JSONError(h, w, r, fmt.Errorf("Could not parse the ingestion request: %w", err), http.StatusBadRequest)
		return
	}

	paths := req.batch()
	if len(paths) == 0 {
		JSONError(h, w, r, fmt.Errorf("No paths were submitted"), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Config.Timeout())
	defer cancel()

	result := h.Ingestor(ctx).Ingest(ctx, paths)

	if h.history != nil {
		if _, err := h.history.Record(ctx, result); err != nil {
			h.log.Println("Could not record ingestion:", err)
		}
	}

	writeJSON(h, w, r, result.Report())
}

func (h *handler) Registry(w http.ResponseWriter, r *http.Request) {
	if h.Config.RegistryPath == "" {
		JSONError(h, w, r, fmt.Errorf("No track registry is configured"), http.StatusNotFound)
		return
	}

	genome := mux.Vars(r)["genome"]

	ctx, cancel := context.WithTimeout(r.Context(), h.Config.Timeout())
	defer cancel()

	result, err := registry.Load(ctx, h.loader, h.Config.RegistryPath, genome)
	if err != nil {
		JSONError(h, w, r, err, http.StatusBadGateway)
		return
	}

	errs := make([]string, 0, len(result.Errors))
	for _, err := range result.Errors {
		errs = append(errs, err.Error())
	}

	menus := result.Menus
	if menus == nil {
		menus = []registry.Menu{}
	}

	writeJSON(h, w, r, struct {
		Genome string          `json:"genome"`
		Encode *registry.Menu  `json:"encode,omitempty"`
		Menus  []registry.Menu `json:"menus"`
		Errors []string        `json:"errors"`
	}{genome, result.Encode, menus, errs})
}

func (h *handler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		JSONError(h, w, r, fmt.Errorf("No history database is configured"), http.StatusNotFound)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			JSONError(h, w, r, fmt.Errorf("limit must be an integer, got %q", l), http.StatusBadRequest)
			return
		}
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		JSONError(h, w, r, err)
		return
	}

	writeJSON(h, w, r, entries)
}
