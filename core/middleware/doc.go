// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: Assigns a request id (RayID) to every incoming request, storing it
//     in the context locals and echoing it in the X-Ray-ID response header.
//
// The start command registers RayID before any other middleware so that every
// log line of a request can be correlated through logger.WithRayID.
package middleware
