package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDriveResolverErrors(t *testing.T) {
	ctx := context.Background()

	r := NewDriveResolver(ctx, nil)
	if _, err := r.ResolveName(ctx, "https://drive.google.com/open?id=abc"); err == nil {
		t.Error("Expected an error without a Drive service")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.ResolveName(cancelled, "https://drive.google.com/open?id=abc"); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestDriveResolverLookupsRunConcurrently(t *testing.T) {
	ctx := context.Background()

	var m sync.Mutex
	calls := make(map[string]int)
	bDone := make(chan struct{})

	r := NewDriveResolver(ctx, nil)
	r.fetch = func(id string) (string, error) {
		m.Lock()
		calls[id]++
		m.Unlock()

		switch id {
		case "A":
			// A can only finish once B has been looked up alongside it
			select {
			case <-bDone:
			case <-time.After(5 * time.Second):
				return "", errors.New("lookups were serialized")
			}
			return "a.bam", nil
		case "B":
			close(bDone)
			return "a.bam.bai", nil
		}

		return "", errors.New("file not found")
	}

	var wg sync.WaitGroup
	names := make([]string, 2)
	errs := make([]error, 2)
	for i, link := range []string{"https://drive.google.com/open?id=A", "https://drive.google.com/file/d/B/view"} {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			names[i], errs[i] = r.ResolveName(ctx, link)
		}(i, link)
		if i == 0 {
			// Let A start first so that it is the one waiting
			time.Sleep(10 * time.Millisecond)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Lookup %d failed: %v", i, err)
		}
	}
	if names[0] != "a.bam" || names[1] != "a.bam.bai" {
		t.Errorf("Unexpected names %v", names)
	}

	// Repeated and failed lookups are answered from the cache
	for i := 0; i < 3; i++ {
		if name, err := r.ResolveName(ctx, "https://drive.google.com/open?id=A"); err != nil || name != "a.bam" {
			t.Errorf("Unexpected repeated lookup %q %v", name, err)
		}
		if _, err := r.ResolveName(ctx, "https://drive.google.com/open?id=GONE"); err == nil {
			t.Error("Expected an error for an unknown file")
		}
	}

	m.Lock()
	defer m.Unlock()
	if calls["A"] != 1 || calls["B"] != 1 || calls["GONE"] != 1 {
		t.Errorf("Expected one fetch per id, got %v", calls)
	}
}
