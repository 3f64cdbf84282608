// Package metrics provides a small counter/gauge registry with Prometheus
// text-format exposition, used by the relay and the status server.
//
// Metrics are registered once at startup and updated lock-free on the hot
// path. The registry deliberately avoids an external metrics dependency: the
// relay exposes a handful of counters and the text format is trivial to
// emit.
package metrics
