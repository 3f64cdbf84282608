// Package ws implements a websocket chat transport for deployments where
// the chat system is fronted by a websocket gateway rather than a plain IRC
// socket. Each text frame is treated as one raw protocol line.
package ws
