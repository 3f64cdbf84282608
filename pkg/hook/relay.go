package hook

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/irchook/irchook/pkg/metrics"
)

// LineSource is the relay's view of a chat transport: an ordered, potentially
// infinite sequence of raw protocol lines. Next blocks until a line arrives
// and returns io.EOF when the stream ends cleanly; any other error terminates
// the relay. Connection handling, auth, and reconnects belong to the
// transport, not the relay.
type LineSource interface {
	Next() (string, error)
	Close() error
}

// Relay drives the core pipeline: it reads raw lines from a transport and
// feeds them through extraction, classification, and dispatch. Extraction
// and classification run synchronously on the relay goroutine, so the match
// engine's buffer needs no locking; dispatch fans out per capture set and is
// awaited before the next line is read.
type Relay struct {
	matcher   *Matcher
	publisher *Publisher
	logger    *slog.Logger
	stats     *metrics.Relay
}

// NewRelay assembles a relay from its already-constructed parts. stats may
// be nil when metrics are disabled.
func NewRelay(m *Matcher, p *Publisher, logger *slog.Logger, stats *metrics.Relay) *Relay {
	return &Relay{matcher: m, publisher: p, logger: logger, stats: stats}
}

// Run consumes the source until it ends, the context is cancelled, or the
// transport fails. A transport error is the one fatal condition the relay
// propagates; a clean end of stream returns nil. Dispatch failures never
// surface here.
//
// The relay waits for every dispatch spawned by one line before reading the
// next, which bounds concurrency to the matches of a single line. With no
// dispatch timeout configured, a hung webhook destination stalls intake.
func (r *Relay) Run(ctx context.Context, source LineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := source.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Info("chat stream ended")
				return nil
			}
			return err
		}
		r.handleLine(ctx, raw)
	}
}

// handleLine runs one raw line through the pipeline.
func (r *Relay) handleLine(ctx context.Context, raw string) {
	r.count(func(s *metrics.Relay) { s.LinesTotal.Inc() })

	payload, ok := Extract(raw)
	if !ok {
		return
	}
	r.count(func(s *metrics.Relay) { s.PayloadsTotal.Inc() })

	r.logger.Debug("checking for matches", "msg", payload)
	sets := r.matcher.Classify(payload)
	r.observeBuffer()
	if len(sets) == 0 {
		return
	}

	r.logger.Info("matched", "content", payload, "sets", len(sets))
	r.count(func(s *metrics.Relay) { s.MatchesTotal.Add(float64(len(sets))) })
	r.publisher.Publish(ctx, sets)
}

// observeBuffer translates the matcher's last buffer transition into metrics.
func (r *Relay) observeBuffer() {
	if r.stats == nil {
		return
	}
	switch r.matcher.LastEvent() {
	case EventOpened:
		r.stats.BufferOpensTotal.Inc()
	case EventConcludedLimit:
		r.stats.BufferConclusionsTotal.With("limit").Inc()
	case EventConcludedPattern:
		r.stats.BufferConclusionsTotal.With("pattern").Inc()
	}
}

func (r *Relay) count(fn func(*metrics.Relay)) {
	if r.stats != nil {
		fn(r.stats)
	}
}
