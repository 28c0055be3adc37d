// Package server provides the HTTP server for the transcription service,
// using Gin with HTTP/2 cleartext (h2c) support so REST and websocket
// traffic share one port.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation
//   - CORS: cross-origin resource sharing configuration
//   - BodySizeLimit: request body size limits
//   - RequestLogger: request logging with duration tracking
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: health check aggregation over registered components
//   - /info: service version and build information
package server
