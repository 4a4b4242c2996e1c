package trackload

import (
	"context"
	"testing"
)

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://my-bucket/registries/hg38/menu.json")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "registries/hg38/menu.json" {
		t.Errorf("Unexpected split %q %q", bucket, object)
	}

	for _, path := range []string{"gs://bucket-only", "gs:///object", "gs://bucket/"} {
		if _, _, err := SplitGoogleStoragePath(path); err == nil {
			t.Errorf("%s: expected an error", path)
		}
	}
}

func TestOpenStorageObjectWithoutClient(t *testing.T) {
	if _, err := OpenStorageObject(context.Background(), nil, "gs://bucket/a.json"); err == nil {
		t.Error("Expected an error without a storage client")
	}
}
