// Package resource is the generic reconciliation engine for Docker Engine
// resource kinds (networks, volumes, secrets, services, ...).
//
// A Descriptor names a kind and how its API behaves: whether it supports
// in-place update, which wire field identifies an instance and where the list
// endpoint keeps its array. NewFactory validates a Descriptor once, at startup,
// and returns a Factory; binding the Factory to a Context (transport client
// and logger) yields a Resource.
//
// # Operations
//
// Every operation returns a lazy future.Future; nothing is sent to the daemon
// until the future is run.
//
//   - Inspect, Create, List, Update, Remove: single remote calls (List inspects
//     every entry with at most ListConcurrency in flight).
//   - Up: inspect, then create when absent (404) or update when present and
//     updatable, then inspect again.
//   - Down: inspect, then remove; an absent resource is a success.
//
// Low-level operations log before the call and after its outcome through the
// Context logger. Logging never changes the result.
//
// # Usage
//
//	factory, err := resource.NewFactory(resource.Descriptor{Name: "network", IDField: "Id"})
//	networks := factory(resource.Context{Docker: client, Log: log})
//	state, err := networks.Up(resource.Document{"Name": "backend", "Driver": "overlay"}).Run(ctx)
package resource
