// Package volume maps stack volumes to Docker Engine volume payloads.
// Volumes are identified by name and cannot be updated.
package volume
