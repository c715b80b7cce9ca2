// Package docker provides the transport client for the Docker Engine HTTP API.
//
// It speaks plain JSON over a unix socket or TCP, the same way the docker CLI
// does, and exposes just the three verbs the reconciliation engine needs.
//
// # Client Interface
//
// The Client interface abstracts the daemon connection, making it easy to
// mock remote calls in unit tests (see core/docker/mocks).
//
//   - Get: fetch a document or a collection.
//   - Post: send a JSON payload (create, update).
//   - Delete: remove a resource.
//
// # Errors
//
// Every non-2xx response becomes a *StatusError carrying the HTTP status.
// StatusError unwraps to the matching containerd/errdefs class, so both
// docker.IsNotFound(err) and cerrdefs.IsNotFound(err) recognise a 404.
// Connection failures carry status 0.
//
// # Usage
//
//	client, err := docker.NewClient(cfg.Docker)
//	doc, err := client.Get(ctx, "/networks/backend", nil)
package docker
