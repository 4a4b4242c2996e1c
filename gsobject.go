package trackload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStorage reports whether path is a gs:// URL.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath separates a gs://bucket/object URL into its bucket
// and object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenStorageObject opens a gs:// object for reading. The caller must close
// the reader.
func OpenStorageObject(ctx context.Context, client *storage.Client, path string) (io.ReadCloser, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no google storage client configured", path)
	}

	bucketName, pathName, err := SplitGoogleStoragePath(path)
	if err != nil {
		return nil, err
	}

	rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rdr, nil
}

// MaybeOpenFromGoogleStorage opens path from Google Storage when it is a gs://
// URL, and from the local filesystem otherwise. Either way the stream is
// transparently decompressed.
func MaybeOpenFromGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser
	var err error

	if IsGoogleStorage(path) {
		rc, err = OpenStorageObject(ctx, client, path)
	} else {
		rc, err = os.Open(ExpandHome(path))
	}
	if err != nil {
		return nil, err
	}

	return MaybeDecompressReadCloser(rc)
}
