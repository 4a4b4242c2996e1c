package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(config *Global) http.Handler {
	router := mux.NewRouter()
	POST := router.Methods("POST").Subrouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := handler{Global: config, router: router}

	GET.HandleFunc("/", h.Index).Name("index")
	GET.HandleFunc("/version", h.Version).Name("version")
	GET.HandleFunc("/goroutines", h.Goroutines)
	GET.HandleFunc("/registry/{genome}", h.Registry).Name("registry")
	GET.HandleFunc("/history", h.History).Name("history")

	//
	// POST
	//
	POST.HandleFunc("/ingest", h.Ingest).Name("ingest")

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router)
}
