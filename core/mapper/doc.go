// Package mapper translates between declared stack entries and Docker Engine
// wire documents.
//
// Each resource kind provides a Mapper. FromConfig turns a Declared entry
// (namespace, name and the loosely-typed fields of the stack file) into the
// create/update payload; FromInspect reduces a remote state to the subset of
// fields the kind manages so both sides can be compared with Drift.
//
// # Helpers
//
//   - PopulateFields: builds a document from a table of Field extractors.
//   - PickFields: copies (and optionally relocates) dotted paths of a document.
//   - Name, Labels: stack namespacing ("{ns}_{name}", com.docker.stack.namespace).
//   - Drift: lists the fields where the remote state differs from the payload.
//   - Passthrough: a Mapper for kinds declared only by descriptor.
package mapper
