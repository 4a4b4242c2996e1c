package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/carbocation/trackload/ingest"
	"github.com/carbocation/trackload/track"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	first := ingest.Result{
		Configs: []track.Config{track.Genome("chr1.fa", "chr1.fa.fai")},
		Errors:  []error{errors.New("data file is missing for index file a.bai")},
	}
	second := ingest.Result{
		Session: &ingest.Session{Filename: "session.json", URL: "https://example.org/session.json", Format: "json"},
	}

	firstID, err := store.Record(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	secondID, err := store.Record(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if secondID <= firstID {
		t.Errorf("Expected increasing ids, got %d then %d", firstID, secondID)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].ID != secondID || entries[0].Session != "session.json" {
		t.Errorf("Expected the session batch first, got %+v", entries[0])
	}
	if entries[1].Configs != 1 || entries[1].Errors != 1 {
		t.Errorf("Unexpected counts %+v", entries[1])
	}

	var report ingest.Report
	if err := json.Unmarshal([]byte(entries[1].Payload), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Configs) != 1 || !report.Configs[0].IsGenome() {
		t.Errorf("Unexpected stored report %+v", report)
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected the limit to apply, got %d entries", len(limited))
	}
}
