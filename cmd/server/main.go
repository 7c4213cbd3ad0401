// Package main - Entry point for the dmc-quote API server
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"dmc-quote/adapters/storage"
	"dmc-quote/api"
	"dmc-quote/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	backend := flag.String("storage", "memory", "Storage backend (memory, file)")
	storageDir := flag.String("storage-dir", "./quotations", "Directory for the file backend")
	flag.Parse()

	defer logging.Sync()

	store, err := storage.New(storage.Backend(*backend), *storageDir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	apiServer := api.NewServerWithStore(version, store)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("dmc-quote server v%s\n", version)
	fmt.Printf("  API: http://localhost%s/api\n", *addr)

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
