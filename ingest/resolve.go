package ingest

import (
	"context"
	"sync"

	"github.com/carbocation/trackload/pathref"
)

// resolveNames fetches display names for cloud references that lack one,
// including Drive links submitted as plain URLs. Lookups run concurrently; a
// failed lookup drops that path and records a ResolveError. Order of the
// surviving paths is preserved.
func (in *Ingestor) resolveNames(ctx context.Context, paths []pathref.Path) ([]pathref.Path, []error) {
	resolved := make([]pathref.Path, len(paths))
	failures := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		// A Drive link's URL tail is not a file name
		if p.Kind == pathref.RemoteURL && pathref.IsGoogleDrive(p.Handle) {
			p = pathref.Cloud("", p.Handle)
		}

		if !p.NeedsResolution() {
			resolved[i] = p
			continue
		}

		if in.Resolver == nil {
			failures[i] = &ResolveError{URL: p.Handle, Err: errNoResolver}
			continue
		}

		wg.Add(1)
		go func(i int, p pathref.Path) {
			defer wg.Done()

			name, err := in.Resolver.ResolveName(ctx, p.Handle)
			if err != nil {
				failures[i] = &ResolveError{URL: p.Handle, Err: err}
				return
			}
			resolved[i] = p.WithDisplayName(name)
		}(i, p)
	}
	wg.Wait()

	out := make([]pathref.Path, 0, len(paths))
	var errs []error
	for i := range paths {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		out = append(out, resolved[i])
	}

	return out, errs
}
