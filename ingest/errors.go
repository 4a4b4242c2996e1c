package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidFiles is reported when a batch yields neither a session nor
	// any configuration.
	ErrNoValidFiles = errors.New("no valid data files submitted")

	// ErrOnlyIndexFiles is reported when a batch holds index files but no data
	// files for them.
	ErrOnlyIndexFiles = errors.New("only index files were selected; the corresponding data files must also be selected")

	errNoResolver = errors.New("no cloud name resolver configured")
	errNoLoader   = errors.New("no JSON loader configured")
)

// InvalidJSONError reports a JSON path that could not be fetched, decoded, or
// recognized as a track, genome, or session descriptor.
type InvalidJSONError struct {
	Name string
	Err  error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("problems parsing JSON %s: %v", e.Name, e.Err)
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// ResolveError reports a cloud reference whose display name could not be
// fetched. The path is dropped from the batch.
type ResolveError struct {
	URL string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve file name for %s: %v", e.URL, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
