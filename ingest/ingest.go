// Package ingest turns a batch of user-selected paths into either a single
// session to load or a list of track and genome configurations, together
// with a report of everything that could not be loaded.
package ingest

import (
	"context"
	"errors"

	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/reconcile"
	"github.com/carbocation/trackload/track"
)

// JSONLoader retrieves the raw bytes of a JSON path.
type JSONLoader interface {
	LoadJSON(ctx context.Context, p pathref.Path) ([]byte, error)
}

// NameResolver fetches the display name of a cloud provider item.
type NameResolver interface {
	ResolveName(ctx context.Context, providerURL string) (string, error)
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Session is an instruction to load a whole browser session. Exactly one of
// File (a local handle) or URL is set.
type Session struct {
	Filename string `json:"filename"`
	File     string `json:"file,omitempty"`
	URL      string `json:"url,omitempty"`
	Format   string `json:"format"`
}

// Result is the outcome of one batch. When Session is set, Configs is empty.
type Result struct {
	Session *Session
	Configs []track.Config
	Errors  []error
}

// Messages renders Errors for presentation.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		out = append(out, err.Error())
	}

	return out
}

// Report is the serializable form of a Result.
type Report struct {
	Session *Session       `json:"session,omitempty"`
	Configs []track.Config `json:"configurations"`
	Errors  []string       `json:"errors"`
}

func (r Result) Report() Report {
	configs := r.Configs
	if configs == nil {
		configs = []track.Config{}
	}

	return Report{Session: r.Session, Configs: configs, Errors: r.Messages()}
}

// Ingestor processes batches. Loader is required for batches holding JSON
// paths and Resolver for batches holding unresolved cloud references; a
// missing collaborator turns into per-path errors. Log is optional.
type Ingestor struct {
	Loader   JSONLoader
	Resolver NameResolver
	Log      logger
}

func New(loader JSONLoader, resolver NameResolver) *Ingestor {
	return &Ingestor{Loader: loader, Resolver: resolver}
}

// Ingest classifies and reconciles one batch. It never fails as a whole:
// every problem is an entry in Result.Errors, and whatever could be loaded is
// returned alongside.
func (in *Ingestor) Ingest(ctx context.Context, paths []pathref.Path) Result {
	var result Result

	paths, errs := in.resolveNames(ctx, paths)
	result.Errors = append(result.Errors, errs...)

	var jsonPaths, xmlPaths, remaining []pathref.Path
	for _, p := range paths {
		switch p.Extension() {
		case "json":
			jsonPaths = append(jsonPaths, p)
		case "xml":
			xmlPaths = append(xmlPaths, p)
		default:
			remaining = append(remaining, p)
		}
	}

	var jsonConfigs []track.Config
	if len(jsonPaths) > 0 {
		slots := in.fetchJSON(ctx, jsonPaths)

		// There can only be one session. Sibling JSON paths are ignored.
		for i := len(slots) - 1; i >= 0; i-- {
			if slots[i].err == nil && slots[i].isSession() {
				result.Session = newSession(slots[i].path, "json")
				in.summarize(paths, result)
				return result
			}
		}

		for _, slot := range slots {
			if slot.err != nil {
				result.Errors = append(result.Errors, &InvalidJSONError{Name: slot.path.Name(), Err: slot.err})
				continue
			}
			jsonConfigs = append(jsonConfigs, slot.configs...)
		}
	}

	// XML is the legacy session format; the last one selected wins
	if len(xmlPaths) > 0 {
		result.Session = newSession(xmlPaths[len(xmlPaths)-1], "xml")
		in.summarize(paths, result)
		return result
	}

	result.Configs = append(result.Configs, jsonConfigs...)

	if len(remaining) > 0 {
		data, index, unrecognized := reconcile.Split(remaining)
		for _, p := range unrecognized {
			result.Errors = append(result.Errors, &reconcile.UnrecognizedFormatError{Name: p.Name()})
		}

		if len(data) == 0 && len(index) > 0 {
			result.Errors = append(result.Errors, ErrOnlyIndexFiles)
		}

		reconciled := reconcile.Reconcile(data, index)
		result.Configs = append(result.Configs, reconciled.Configs...)
		result.Errors = append(result.Errors, reconciled.Errors...)
	}

	if len(result.Configs) == 0 {
		result.Errors = append(result.Errors, ErrNoValidFiles)
	}

	in.summarize(paths, result)

	return result
}

func newSession(p pathref.Path, format string) *Session {
	s := &Session{Filename: p.Name(), Format: format}
	if p.Kind == pathref.LocalFile {
		s.File = p.Handle
	} else {
		s.URL = p.Location()
	}

	return s
}

func (in *Ingestor) summarize(paths []pathref.Path, result Result) {
	if in.Log == nil {
		return
	}

	if result.Session != nil {
		in.Log.Printf("Ingested %d paths as a %s session from %s\n", len(paths), result.Session.Format, result.Session.Filename)
		return
	}

	in.Log.Printf("Ingested %d paths: %d configurations, %d errors\n", len(paths), len(result.Configs), len(result.Errors))
}

// HasError reports whether any error in the result matches target, as
// errors.Is does.
func (r Result) HasError(target error) bool {
	for _, err := range r.Errors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
