// Package fetch retrieves the JSON documents and cloud metadata that batch
// ingestion depends on, from local files, web servers, Google Storage and
// Google Drive.
package fetch

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload"
	"github.com/carbocation/trackload/pathref"
	"google.golang.org/api/drive/v3"
)

// MaxDocumentSize bounds how much of a JSON document is read.
var MaxDocumentSize int64 = 64 << 20

// Loader opens paths of every kind. Storage and Drive are optional; without
// them gs:// URLs fail and Drive items are fetched anonymously over HTTP.
type Loader struct {
	Storage *storage.Client
	Drive   *drive.Service
	HTTP    *http.Client
}

// LoadJSON reads the whole (decompressed) document behind p.
func (l *Loader) LoadJSON(ctx context.Context, p pathref.Path) ([]byte, error) {
	rc, err := l.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := ioutil.ReadAll(io.LimitReader(rc, MaxDocumentSize+1))
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", p, err))
	}
	if int64(len(body)) > MaxDocumentSize {
		return nil, fmt.Errorf("%s: document exceeds %d bytes", p, MaxDocumentSize)
	}

	return body, nil
}

// Open returns a decompressing reader over the content behind p. The caller
// must close it.
func (l *Loader) Open(ctx context.Context, p pathref.Path) (io.ReadCloser, error) {
	var rc io.ReadCloser
	var err error

	switch p.Kind {
	case pathref.LocalFile:
		rc, err = os.Open(trackload.ExpandHome(p.Handle))
	case pathref.RemoteURL:
		if trackload.IsGoogleStorage(p.Handle) {
			rc, err = trackload.OpenStorageObject(ctx, l.Storage, p.Handle)
		} else {
			rc, err = l.get(ctx, p.Handle)
		}
	case pathref.CloudRef:
		rc, err = l.openCloud(ctx, p)
	default:
		err = fmt.Errorf("unsupported path kind %s", p.Kind)
	}
	if err != nil {
		return nil, err
	}

	return trackload.MaybeDecompressReadCloser(rc)
}

func (l *Loader) openCloud(ctx context.Context, p pathref.Path) (io.ReadCloser, error) {
	if !pathref.IsGoogleDrive(p.Handle) {
		return l.get(ctx, p.Location())
	}

	if l.Drive == nil {
		return l.get(ctx, p.Location())
	}

	id := pathref.DriveFileID(p.Handle)
	if id == "" {
		return nil, fmt.Errorf("unknown Google Drive url format: %s", p.Handle)
	}

	resp, err := l.Drive.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", p.Handle, err))
	}

	return resp.Body, nil
}

func (l *Loader) get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := l.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: HTTP status %s", url, resp.Status)
	}

	return resp.Body, nil
}
