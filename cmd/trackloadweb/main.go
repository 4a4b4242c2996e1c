// trackloadweb serves batch ingestion, track registry menus, and an
// ingestion history over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"cloud.google.com/go/storage"
	"github.com/carbocation/trackload/compileinfo"
	"github.com/carbocation/trackload/fetch"
	"github.com/carbocation/trackload/history"
)

var global *Global

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	configPath := flag.String("config", "", "Path to a JSON configuration file.")
	port := flag.Int("port", 0, "(Optional) Port for HTTP server. Overrides the configuration file.")
	flag.Parse()

	if *configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	config, err := ParseJSONConfigFromPath(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if *port != 0 {
		config.Port = *port
	}

	ctx := context.Background()
	loader := &fetch.Loader{}

	global = &Global{
		Site:   "trackload",
		Config: config,
		log:    log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
		loader: loader,
	}

	global.log.Println(compileinfo.Get())

	if config.GoogleStorage {
		sclient, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer sclient.Close()
		loader.Storage = sclient
	}

	if config.DriveCredentials != "" || config.DriveAPIKey != "" {
		svc, err := fetch.NewDriveService(ctx, config.DriveCredentials, config.DriveAPIKey)
		if err != nil {
			log.Fatalln(err)
		}
		loader.Drive = svc
		global.driveService = svc
	}

	if config.HistoryDB != "" {
		store, err := history.Open(config.HistoryDB)
		if err != nil {
			log.Fatalln(err)
		}
		defer store.Close()
		global.history = store
	}

	global.log.Println("Launching", global.Site)

	go func() {
		global.log.Println("Starting HTTP server on port", config.Port)
		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, config.Port), router(global)); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:
			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
}
