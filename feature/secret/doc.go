// Package secret maps stack secrets to swarm secret payloads.
//
// Secret data comes either inline (data) or from a local file (file) and is
// sent base64 encoded. The daemon never returns it, so diff ignores Data.
package secret
