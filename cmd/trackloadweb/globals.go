package main

import (
	"context"

	"github.com/carbocation/trackload/fetch"
	"github.com/carbocation/trackload/history"
	"github.com/carbocation/trackload/ingest"
	"google.golang.org/api/drive/v3"
)

type Global struct {
	log          logger
	history      *history.Store
	loader       ingest.JSONLoader
	driveService *drive.Service

	Site   string
	Config JSONConfig
}

// Ingestor builds a per-request ingestor so that Drive lookups are bounded by
// (and memoized for) the request.
func (g *Global) Ingestor(ctx context.Context) *ingest.Ingestor {
	in := ingest.New(g.loader, nil)
	in.Log = g.log
	if g.driveService != nil {
		in.Resolver = fetch.NewDriveResolver(ctx, g.driveService)
	}

	return in
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
