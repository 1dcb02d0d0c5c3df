// Package server provides HTTP server implementation for the optimade API.
//
// The server package implements a clean, layered architecture following Go best practices:
//
//   - Server: Core server struct with lifecycle management
//   - Config: Server configuration with sensible defaults
//   - Router: Route registration and middleware chain
//   - Handlers: HTTP request handlers organized by domain
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 5000
//	cfg.RootPath = "/optimade"
//
//	srv, err := server.New(app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	http.ListenAndServe(":5000", srv.Handler())
package server

//go:generate gomarkdoc --output README.md .
