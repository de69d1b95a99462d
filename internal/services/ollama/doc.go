// Package ollama is a minimal client for the local Ollama HTTP API,
// covering the chat endpoint with image attachments and the tags endpoint
// used as a liveness probe.
package ollama
