package reconcile

import "github.com/carbocation/trackload/pathref"

// Split sorts a batch into data files and index candidates, keyed by display
// name. Paths that are neither are returned separately. When two paths share a
// display name, the later one wins.
func Split(paths []pathref.Path) (data, index map[string]pathref.Path, unrecognized []pathref.Path) {
	data = make(map[string]pathref.Path)
	index = make(map[string]pathref.Path)

	for _, p := range paths {
		ext := p.Extension()
		switch {
		case IsDataExtension(ext):
			data[p.Name()] = p
		case IsIndexExtension(ext):
			index[p.Name()] = p
		default:
			unrecognized = append(unrecognized, p)
		}
	}

	return data, index, unrecognized
}
