// Package http implements the HTTP transport layer of the vault-keeper server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, CORS and response compression are handled in this package before
// requests are delegated to the service layer.
//
// Request bodies that carry a vault password are never logged.
package http
