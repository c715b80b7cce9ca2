// Package stack reconciles a whole stack file against the Docker Engine.
//
// A stack file declares networks, volumes, secrets and services under one
// namespace, plus custom kinds (descriptor only) and their raw resources:
//
//	namespace: app
//	networks:
//	  front: {driver: overlay}
//	services:
//	  web: {image: nginx:1.27, networks: [front], ports: ["8080:80"]}
//	kinds:
//	  - {name: config, hasUpdate: true, idField: ID}
//	resources:
//	  config:
//	    nginx: {Data: ZXhhbXBsZQ==}
//
// # Ordering
//
// Up applies kinds in dependency order: networks, volumes, secrets, services,
// then custom kinds in declaration order; entries of one kind by name. Down
// walks the same order backwards. Each invocation gets a run id which tags
// every log line and history record.
//
// # Components
//
//   - Registry: builtin and custom kinds bound to their mappers.
//   - Service: Up, Down, Diff, List, Inspect and History.
//   - Handler: HTTP endpoints for the start command.
//   - Feature: registers the handler with the loader.
//
// # HTTP Endpoints
//
//   - GET  /resources/:kind : List instances of a kind (?namespace= filters).
//   - GET  /resources/:kind/:name : Inspect one instance.
//   - POST /stack/up, /stack/down, /stack/diff : Body is a stack file, or ?location= names one.
//   - GET  /history : Recent reconcile records (?limit=).
package stack
