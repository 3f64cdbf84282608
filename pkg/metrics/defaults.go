package metrics

// Relay holds the metric set for one relay process.
//
// Label conventions:
//   - outcome: ok, error (dispatch results)
//   - reason: limit, pattern (buffer conclusions)
type Relay struct {
	Registry *Registry

	// LinesTotal counts raw lines read from the chat transport.
	LinesTotal *Counter

	// PayloadsTotal counts lines that carried an extractable payload.
	PayloadsTotal *Counter

	// MatchesTotal counts capture-group sets produced by the match engine.
	MatchesTotal *Counter

	// DispatchesTotal counts completed webhook requests.
	// Labels: outcome
	DispatchesTotal *Counter

	// BufferOpensTotal counts accumulation windows opened by an init trigger.
	BufferOpensTotal *Counter

	// BufferConclusionsTotal counts concluded accumulation windows.
	// Labels: reason
	BufferConclusionsTotal *Counter

	// UptimeSeconds is the relay uptime, set by the status server.
	UptimeSeconds *Gauge
}

// NewRelay registers the relay metric set on a fresh registry.
func NewRelay() *Relay {
	r := NewRegistry()
	return &Relay{
		Registry: r,
		LinesTotal: r.NewCounter(
			"irchook_lines_total",
			"Raw lines read from the chat transport",
		),
		PayloadsTotal: r.NewCounter(
			"irchook_payloads_total",
			"Lines that carried an extractable payload",
		),
		MatchesTotal: r.NewCounter(
			"irchook_matches_total",
			"Capture-group sets produced by the match engine",
		),
		DispatchesTotal: r.NewCounter(
			"irchook_dispatches_total",
			"Completed webhook dispatch attempts",
			"outcome",
		),
		BufferOpensTotal: r.NewCounter(
			"irchook_buffer_opens_total",
			"Accumulation windows opened by an init trigger",
		),
		BufferConclusionsTotal: r.NewCounter(
			"irchook_buffer_conclusions_total",
			"Accumulation windows concluded",
			"reason",
		),
		UptimeSeconds: r.NewGauge(
			"irchook_uptime_seconds",
			"Relay uptime in seconds",
		),
	}
}
