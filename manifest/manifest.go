// Package manifest reads delimited lists of paths to ingest as one batch.
package manifest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload"
	"github.com/carbocation/trackload/pathref"
	"github.com/gocarina/gocsv"
)

// Row is one manifest line. Name is only consulted for cloud provider links,
// whose display name cannot be derived from the URL.
type Row struct {
	Path string `csv:"path"`
	Name string `csv:"name"`
}

// Read parses a manifest with a header row containing a "path" column and an
// optional "name" column. The delimiter is detected from the content.
func Read(r io.Reader) ([]pathref.Path, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = trackload.DetermineDelimiter(content)
	cr.Comment = '#'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	rows := []*Row{}
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]pathref.Path, 0, len(rows))
	for i, row := range rows {
		p := strings.TrimSpace(row.Path)
		if p == "" {
			return nil, fmt.Errorf("manifest line %d has no path", i+2)
		}
		out = append(out, pathFor(p, strings.TrimSpace(row.Name)))
	}

	return out, nil
}

// ReadFile reads a manifest from the local filesystem or Google Storage.
// Compressed manifests are accepted.
func ReadFile(ctx context.Context, path string, client *storage.Client) ([]pathref.Path, error) {
	rc, err := trackload.MaybeOpenFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	return Read(rc)
}

func pathFor(raw, name string) pathref.Path {
	p := pathref.Parse(raw)
	if p.Kind == pathref.CloudRef && name != "" {
		return p.WithDisplayName(name)
	}

	return p
}
