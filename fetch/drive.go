package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/BenLubar/memoize"
	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload/pathref"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// NewDriveService connects to the Drive v3 API with read-only scope. Either a
// service account credentials file or an API key may be supplied; with
// neither, application default credentials are used.
func NewDriveService(ctx context.Context, credentialsFile, apiKey string) (*drive.Service, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return svc, nil
}

// DriveResolver looks up Drive file names. Lookups are memoized per file id
// for the life of the resolver, failures included, so a resolver should be
// scoped to one batch or one short-lived process. Lookups of different ids
// run concurrently; lookups of the same id wait for the first.
type DriveResolver struct {
	svc   *drive.Service
	ctx   context.Context
	fetch func(id string) (string, error)

	m       sync.Mutex
	lookups map[string]*driveLookup
}

type driveLookup struct {
	sync.Mutex
	name func(string) (string, error)
}

// NewDriveResolver binds a resolver to ctx, which bounds every lookup it makes.
func NewDriveResolver(ctx context.Context, svc *drive.Service) *DriveResolver {
	r := &DriveResolver{svc: svc, ctx: ctx}
	r.fetch = r.fileName

	return r
}

func (r *DriveResolver) fileName(id string) (string, error) {
	if r.svc == nil {
		return "", fmt.Errorf("no Google Drive service configured")
	}

	f, err := r.svc.Files.Get(id).SupportsAllDrives(true).Fields("name").Context(r.ctx).Do()
	if err != nil {
		return "", pfx.Err(err)
	}

	return f.Name, nil
}

// lookupFor returns the memoized lookup for id. Only the map is guarded by
// r.m; each memoized function is called under its own lock.
func (r *DriveResolver) lookupFor(id string) *driveLookup {
	r.m.Lock()
	defer r.m.Unlock()

	if r.lookups == nil {
		r.lookups = make(map[string]*driveLookup)
	}

	l, ok := r.lookups[id]
	if !ok {
		l = &driveLookup{name: memoize.Memoize(r.fetch).(func(string) (string, error))}
		r.lookups[id] = l
	}

	return l
}

// ResolveName satisfies ingest.NameResolver.
func (r *DriveResolver) ResolveName(ctx context.Context, providerURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := pathref.DriveFileID(providerURL)
	if id == "" {
		return "", fmt.Errorf("unknown Google Drive url format: %s", providerURL)
	}

	l := r.lookupFor(id)
	l.Lock()
	defer l.Unlock()

	return l.name(id)
}
