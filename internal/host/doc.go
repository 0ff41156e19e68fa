// Package host implements the stdio bridge between the engine and the
// host editor. The host speaks JSON-RPC 2.0 with Content-Length framing:
// it streams document lifecycle notifications in, issues generation
// requests, and services workspace/applyEdit calls going the other way.
package host
