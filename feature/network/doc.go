// Package network maps stack networks to Docker Engine network payloads.
//
// Networks have no update endpoint: a declared change to an existing network
// shows up in diff but is never applied in place.
package network
