// Package hook contains the relay core: extracting message payloads from raw
// chat-protocol lines, classifying them against a configured search pattern,
// and publishing matches to an HTTP webhook.
//
// The pieces compose as a pipeline driven by a single consumer:
//
//	raw line -> Extract -> Matcher.Classify -> Publisher.Publish
//
// Extract strips the protocol framing and yields the plain-text payload.
// Matcher turns one payload at a time into zero or more capture-group sets,
// buffering consecutive lines first when multi-line mode is enabled.
// Publisher renders each set into a request body and headers and POSTs them
// concurrently, joining all requests before returning.
//
// A Matcher instance is not safe for concurrent use; it is owned by the one
// goroutine running the relay loop. Publisher is safe to share.
package hook
