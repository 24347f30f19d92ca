// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//     An empty key leaves the API open.
//   - rayid: tags every request with a ray id, reusing an incoming X-Ray-ID
//     header, and echoes it in the response for tracing.
//
// rayid must be registered first so that request logs carry the id.
package middleware
