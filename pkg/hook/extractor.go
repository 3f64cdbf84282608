package hook

import "strings"

// Extract strips the chat-protocol envelope from a raw line and returns the
// plain-text payload. The framing places a sender/metadata prefix terminated
// by a colon immediately before the payload, and the raw line itself begins
// with one informational leading character. Extract skips that first
// character, scans for the next colon, and returns everything after it with
// surrounding whitespace (including the trailing newline) trimmed.
//
// The second return value is false when the line carries no payload, i.e.
// when no colon exists past the first character.
func Extract(raw string) (string, bool) {
	if len(raw) < 1 {
		return "", false
	}
	rest := raw[1:]
	idx := strings.IndexByte(rest, ':')
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[idx+1:]), true
}
