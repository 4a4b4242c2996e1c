// trackload reconciles a batch of genomic data files, index files, and JSON
// descriptors and prints the resulting track configurations (or the session
// to load) as JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/trackload"
	"github.com/carbocation/trackload/compileinfo"
	"github.com/carbocation/trackload/fetch"
	"github.com/carbocation/trackload/ingest"
	"github.com/carbocation/trackload/manifest"
	"github.com/carbocation/trackload/pathref"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var manifestPath, dataPath, indexPath, driveCredentials, driveAPIKey string
	var pretty, version, strict bool
	flag.StringVar(&manifestPath, "manifest", "", "(Optional) Delimited file with a 'path' column (and optional 'name' column) listing files to load. May be a Google Storage URL (gs://).")
	flag.StringVar(&dataPath, "data", "", "(Optional) A single data file path or URL. Combine with --index.")
	flag.StringVar(&indexPath, "index", "", "(Optional) The index for --data.")
	flag.StringVar(&driveCredentials, "drive-credentials", "", "(Optional) Service account credentials for resolving Google Drive links.")
	flag.StringVar(&driveAPIKey, "drive-key", "", "(Optional) API key for resolving public Google Drive links.")
	flag.BoolVar(&pretty, "pretty", false, "Indent the JSON output.")
	flag.BoolVar(&strict, "strict", false, "Exit with a nonzero status if any file could not be loaded.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		compileinfo.Fprint(os.Stdout)
		return
	}

	compileinfo.Fprint(os.Stderr)

	ctx := context.Background()

	paths := pathref.Pair(dataPath, indexPath)
	for _, arg := range flag.Args() {
		paths = append(paths, pathref.Parse(arg))
	}

	var sclient *storage.Client
	if trackload.IsGoogleStorage(manifestPath) {
		sclient = mustStorageClient(ctx)
		defer sclient.Close()
	}

	if manifestPath != "" {
		fromManifest, err := manifest.ReadFile(ctx, manifestPath, sclient)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Read %d paths from %s\n", len(fromManifest), manifestPath)
		paths = append(paths, fromManifest...)
	}

	if sclient == nil && anyGoogleStorage(paths) {
		sclient = mustStorageClient(ctx)
		defer sclient.Close()
	}

	if len(paths) == 0 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	loader := &fetch.Loader{Storage: sclient}
	ingestor := ingest.New(loader, nil)
	ingestor.Log = log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime)

	if driveCredentials != "" || driveAPIKey != "" {
		svc, err := fetch.NewDriveService(ctx, driveCredentials, driveAPIKey)
		if err != nil {
			log.Fatalln(err)
		}
		loader.Drive = svc
		ingestor.Resolver = fetch.NewDriveResolver(ctx, svc)
	}

	result := ingestor.Ingest(ctx, paths)

	for _, msg := range result.Messages() {
		log.Println("ERROR:", msg)
	}

	enc := json.NewEncoder(STDOUT)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result.Report()); err != nil {
		log.Fatalln(err)
	}

	if result.Session == nil && len(result.Configs) == 0 {
		STDOUT.Flush()
		os.Exit(1)
	}

	if strict && len(result.Errors) > 0 {
		STDOUT.Flush()
		os.Exit(2)
	}
}

func mustStorageClient(ctx context.Context) *storage.Client {
	sclient, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatalln(err)
	}

	return sclient
}

func anyGoogleStorage(paths []pathref.Path) bool {
	for _, p := range paths {
		if p.Kind == pathref.RemoteURL && trackload.IsGoogleStorage(p.Handle) {
			return true
		}
	}

	return false
}
