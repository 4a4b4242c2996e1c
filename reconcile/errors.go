package reconcile

import "fmt"

// MissingIndexError reports a data file whose required index was not
// selected under any accepted name. The data file is not loaded.
type MissingIndexError struct {
	Data       string
	Candidates []string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("data file %s is missing required index file", e.Data)
}

// OrphanIndexError reports an index file selected without its data file.
type OrphanIndexError struct {
	Index string
}

func (e *OrphanIndexError) Error() string {
	return fmt.Sprintf("data file is missing for index file %s", e.Index)
}

// UnrecognizedFormatError reports a file that is neither a known data file
// nor a known index file.
type UnrecognizedFormatError struct {
	Name string
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized file format %s", e.Name)
}
