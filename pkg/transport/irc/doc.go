// Package irc implements the IRC chat transport: a single registered
// connection that yields raw protocol lines to the relay.
//
// The transport stays deliberately thin. It handles only the protocol
// housekeeping the relay cannot live without (registration, PING/PONG,
// channel joins) and passes every received line through untouched; payload
// extraction and matching belong to the hook package.
package irc
