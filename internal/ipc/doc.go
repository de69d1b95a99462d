// Package ipc exposes the daemon control surface as JSON-RPC over a Unix
// socket. The CLI is the only intended client; the protocol carries status
// snapshots, a stop request, and a notification probe.
package ipc
