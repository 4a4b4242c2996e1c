// Package registry reads track registries: a JSON file mapping genome ids to
// the menu files that list the curated tracks for that genome.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload/ingest"
	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/track"
)

// EncodeType marks the menu that configures the ENCODE search tables.
const EncodeType = "ENCODE"

// Menu is one dropdown entry offering a set of tracks.
type Menu struct {
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type,omitempty"`
	GenomeID    string         `json:"genomeID,omitempty"`
	DatasetID   string         `json:"datasetId,omitempty"`
	Tracks      []track.Config `json:"tracks,omitempty"`
}

// Result holds the menus for one genome. Menus are in reverse registry order,
// the order in which they are stacked under the dropdown divider.
type Result struct {
	Encode *Menu
	Menus  []Menu
	Errors []error
}

// MenuError reports a menu file that could not be loaded.
type MenuError struct {
	Path string
	Err  error
}

func (e *MenuError) Error() string {
	return fmt.Sprintf("track registry menu %s: %v", e.Path, e.Err)
}

func (e *MenuError) Unwrap() error {
	return e.Err
}

// Paths returns the menu file paths the registry lists for genomeID, or nil
// when the genome has none.
func Paths(ctx context.Context, loader ingest.JSONLoader, registryPath, genomeID string) ([]string, error) {
	body, err := loader.LoadJSON(ctx, pathref.Parse(registryPath))
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("retrieving track registry %s: %w", registryPath, err))
	}

	registry := make(map[string][]string)
	if err := json.Unmarshal(body, &registry); err != nil {
		return nil, pfx.Err(fmt.Errorf("parsing track registry %s: %w", registryPath, err))
	}

	return registry[genomeID], nil
}

// Load reads the registry and every menu file it lists for genomeID. Only a
// failure to read the registry itself is returned as an error; menu files
// that fail are reported in Result.Errors.
func Load(ctx context.Context, loader ingest.JSONLoader, registryPath, genomeID string) (Result, error) {
	var result Result

	paths, err := Paths(ctx, loader, registryPath, genomeID)
	if err != nil {
		return result, err
	}

	menus := make([]*Menu, len(paths))
	failures := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			menu, err := loadMenu(ctx, loader, path)
			if err != nil {
				failures[i] = &MenuError{Path: path, Err: err}
				return
			}
			menus[i] = menu
		}(i, path)
	}
	wg.Wait()

	for i := range paths {
		if failures[i] != nil {
			result.Errors = append(result.Errors, failures[i])
			continue
		}

		menu := menus[i]
		if menu.Type == EncodeType {
			result.Encode = menu
			continue
		}

		result.Menus = append([]Menu{*menu}, result.Menus...)
	}

	return result, nil
}

func loadMenu(ctx context.Context, loader ingest.JSONLoader, path string) (*Menu, error) {
	body, err := loader.LoadJSON(ctx, pathref.Parse(path))
	if err != nil {
		return nil, err
	}

	menu := &Menu{}
	if err := json.Unmarshal(body, menu); err != nil {
		return nil, err
	}

	if menu.Label == "" && menu.Type != EncodeType {
		return nil, fmt.Errorf("menu has no label")
	}

	for i := range menu.Tracks {
		track.InferTrackTypes(&menu.Tracks[i])
	}

	return menu, nil
}
