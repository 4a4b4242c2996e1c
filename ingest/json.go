package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/track"
)

var errUnrecognizedDescriptor = errors.New("not a track, genome, or session descriptor")

// jsonSlot is the outcome of retrieving one JSON path.
type jsonSlot struct {
	path    pathref.Path
	objects []map[string]interface{}
	configs []track.Config
	err     error
}

// isSession reports whether the document describes a whole browser session.
func (s jsonSlot) isSession() bool {
	for _, obj := range s.objects {
		if hasAnyKey(obj, "genome", "reference") {
			return true
		}
	}

	return false
}

// fetchJSON retrieves every JSON path concurrently. Slot i corresponds to
// paths[i]; a failed retrieval only marks its own slot.
func (in *Ingestor) fetchJSON(ctx context.Context, paths []pathref.Path) []jsonSlot {
	slots := make([]jsonSlot, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p pathref.Path) {
			defer wg.Done()
			slots[i] = in.loadJSON(ctx, p)
		}(i, p)
	}
	wg.Wait()

	return slots
}

func (in *Ingestor) loadJSON(ctx context.Context, p pathref.Path) jsonSlot {
	slot := jsonSlot{path: p}

	if in.Loader == nil {
		slot.err = errNoLoader
		return slot
	}

	body, err := in.Loader.LoadJSON(ctx, p)
	if err != nil {
		slot.err = err
		return slot
	}

	raws, err := splitDocument(body)
	if err != nil {
		slot.err = err
		return slot
	}

	for _, raw := range raws {
		obj := make(map[string]interface{})
		if err := json.Unmarshal(raw, &obj); err != nil {
			slot.err = err
			return slot
		}
		slot.objects = append(slot.objects, obj)
	}

	// Sessions are handed over whole and need no further decoding
	if slot.isSession() {
		return slot
	}

	for i, raw := range raws {
		if !hasAnyKey(slot.objects[i], "url", "fastaURL") {
			slot.err = errUnrecognizedDescriptor
			return slot
		}

		var config track.Config
		if err := json.Unmarshal(raw, &config); err != nil {
			slot.err = err
			return slot
		}
		track.InferTrackTypes(&config)
		slot.configs = append(slot.configs, config)
	}

	return slot
}

// splitDocument accepts either one JSON object or an array of them.
func splitDocument(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty JSON document")
	}

	if trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, err
		}
		if len(raws) == 0 {
			return nil, errors.New("empty JSON array")
		}
		return raws, nil
	}

	return []json.RawMessage{json.RawMessage(trimmed)}, nil
}

func hasAnyKey(obj map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			return true
		}
	}

	return false
}
