// Package reconcile pairs selected data files with their index files and
// reports data files lacking a required index and index files lacking data.
package reconcile

import (
	"sort"

	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/track"
)

// DataEntry is a data file together with the index names that satisfy it.
type DataEntry struct {
	Name        string
	Path        pathref.Path
	Candidates  []string
	Requirement IndexRequirement
}

// IndexEntry is a selected index file.
type IndexEntry struct {
	Name string
	Path pathref.Path
}

// Result is the outcome of reconciling one batch.
type Result struct {
	// Resolved holds one slot per candidate name of each data file that
	// retains an index association. A nil slot is a candidate that was not
	// selected. Data files whose only, optional, candidate is absent have no
	// entry.
	Resolved map[string][]*IndexEntry

	// MissingIndex lists data files rejected for lack of a required index.
	MissingIndex []string

	// MissingDataForIndex lists index files matched by no data file.
	MissingDataForIndex []string

	Configs []track.Config
	Errors  []error
}

// Reconcile matches data files against index candidates, both keyed by
// display name. It is a pure function of its inputs: data files are visited
// in name order, and errors list missing indices before orphaned index files.
func Reconcile(data, index map[string]pathref.Path) Result {
	result := Result{Resolved: make(map[string][]*IndexEntry)}

	entries := dataEntries(data)

	used := make(map[string]struct{})
	for _, entry := range entries {
		slots, retained := resolve(entry, index)
		if !retained {
			continue
		}

		result.Resolved[entry.Name] = slots
		for _, slot := range slots {
			if slot != nil {
				used[slot.Name] = struct{}{}
			}
		}
	}

	for _, entry := range entries {
		slots, retained := result.Resolved[entry.Name]
		if retained && firstPresent(slots) == nil {
			result.MissingIndex = append(result.MissingIndex, entry.Name)
			result.Errors = append(result.Errors, &MissingIndexError{Data: entry.Name, Candidates: entry.Candidates})
			continue
		}

		result.Configs = append(result.Configs, configure(entry, firstPresent(slots)))
	}

	for _, name := range sortedKeys(index) {
		if _, ok := used[name]; ok {
			continue
		}
		result.MissingDataForIndex = append(result.MissingDataForIndex, name)
		result.Errors = append(result.Errors, &OrphanIndexError{Index: name})
	}

	return result
}

func dataEntries(data map[string]pathref.Path) []DataEntry {
	entries := make([]DataEntry, 0, len(data))
	for _, name := range sortedKeys(data) {
		candidates, req, ok := CandidateIndexNames(name)
		if !ok {
			continue
		}
		entries = append(entries, DataEntry{
			Name:        name,
			Path:        data[name],
			Candidates:  candidates,
			Requirement: req,
		})
	}

	return entries
}

// resolve fills one slot per candidate name. retained is false when the data
// file's lone candidate is optional and absent, which is not an error.
func resolve(entry DataEntry, index map[string]pathref.Path) (slots []*IndexEntry, retained bool) {
	slots = make([]*IndexEntry, len(entry.Candidates))
	for i, candidate := range entry.Candidates {
		if p, ok := index[candidate]; ok {
			slots[i] = &IndexEntry{Name: candidate, Path: p}
		}
	}

	if len(slots) == 1 && slots[0] == nil && entry.Requirement.Optional {
		return nil, false
	}

	return slots, true
}

// firstPresent prefers earlier slots, so "sample.bam.bai" beats "sample.bai".
func firstPresent(slots []*IndexEntry) *IndexEntry {
	for _, slot := range slots {
		if slot != nil {
			return slot
		}
	}

	return nil
}

func configure(entry DataEntry, idx *IndexEntry) track.Config {
	indexURL := ""
	if idx != nil {
		indexURL = idx.Path.Location()
	}

	format := track.InferFormat(entry.Name)
	if track.IsSequenceFormat(format) {
		return track.Genome(entry.Path.Location(), indexURL)
	}

	config := track.Config{
		Name:     entry.Name,
		Filename: entry.Name,
		Format:   format,
		URL:      entry.Path.Location(),
		IndexURL: indexURL,
	}

	if indexURL == "" && track.IsIndexableFormat(format) {
		config.SetIndexed(false)
	}

	track.InferTrackTypes(&config)

	return config
}

func sortedKeys(m map[string]pathref.Path) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
