package hook

import (
	"fmt"
	"regexp"
	"strings"
)

// CaptureSet is the result of one regex match occurrence: index 0 is the full
// match, indices 1..N are the capturing sub-groups in order. Groups that did
// not participate in the match are omitted rather than padded with empty
// strings.
type CaptureSet []string

// MatcherConfig configures a Matcher. SearchPattern is required; the
// remaining fields only apply when MultiLine is set.
type MatcherConfig struct {
	// SearchPattern is the regular expression a payload (or assembled
	// multi-line candidate) must match to produce capture sets.
	SearchPattern string

	// MultiLine enables buffered matching: lines are accumulated between an
	// init trigger and a conclusion condition, then matched as one candidate.
	MultiLine bool

	// InitPattern opens an accumulation window when a payload matches it.
	InitPattern string

	// ConcludePattern closes the window early when a payload matches it.
	// Optional; empty means only LineLimit concludes the buffer.
	ConcludePattern string

	// LineLimit is the maximum number of buffered lines before the window is
	// forcibly concluded. A limit of 1 evaluates the candidate right after
	// the init line.
	LineLimit int
}

// Matcher is a stateful classifier that turns payloads into capture-group
// sets. In multi-line mode it owns an accumulation buffer mutated only by its
// single caller; it must live for the whole chat session since the buffer
// cannot be rebuilt from one line.
type Matcher struct {
	search     *regexp.Regexp
	multiLine  bool
	initRe     *regexp.Regexp
	concludeRe *regexp.Regexp
	lineLimit  int
	buffer     []string
	lastEvent  Event
}

// Event describes what the buffer state machine did during the most recent
// Classify call. Single-line mode always reports EventNone.
type Event int

const (
	// EventNone: no buffer transition happened.
	EventNone Event = iota
	// EventOpened: an init trigger opened an accumulation window.
	EventOpened
	// EventConcludedLimit: the window closed because it reached the line limit.
	EventConcludedLimit
	// EventConcludedPattern: the window closed on a conclude-pattern match.
	EventConcludedPattern
)

// NewMatcher compiles the configured patterns and returns a ready Matcher.
// An invalid pattern or a non-positive line limit in multi-line mode is a
// construction error; there is no runtime matching failure.
func NewMatcher(cfg MatcherConfig) (*Matcher, error) {
	search, err := regexp.Compile(cfg.SearchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}

	m := &Matcher{
		search:    search,
		multiLine: cfg.MultiLine,
		lineLimit: cfg.LineLimit,
	}

	if !cfg.MultiLine {
		return m, nil
	}

	if cfg.InitPattern == "" {
		return nil, fmt.Errorf("multi-line mode requires a line init pattern")
	}
	m.initRe, err = regexp.Compile(cfg.InitPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid line init pattern: %w", err)
	}
	if cfg.ConcludePattern != "" {
		m.concludeRe, err = regexp.Compile(cfg.ConcludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid line conclude pattern: %w", err)
		}
	}
	if cfg.LineLimit < 1 {
		return nil, fmt.Errorf("line limit must be at least 1, got %d", cfg.LineLimit)
	}

	return m, nil
}

// Classify consumes one payload and returns the capture-group sets it
// produces, if any. Single-line mode matches the payload directly. Multi-line
// mode runs a two-state machine: idle until a payload matches the init
// pattern, then accumulating until either the buffer reaches the line limit
// or a payload matches the conclude pattern. On conclusion the buffered lines
// are joined with single spaces, the buffer is cleared, and the assembled
// candidate goes through the same find-all matching as single-line mode. A
// concluded candidate that fails to match yields no sets and the next init
// trigger must reopen the window.
func (m *Matcher) Classify(payload string) []CaptureSet {
	m.lastEvent = EventNone
	if !m.multiLine {
		return m.findAll(payload)
	}

	if len(m.buffer) == 0 {
		if m.initRe.MatchString(payload) {
			m.buffer = append(m.buffer, payload)
			m.lastEvent = EventOpened
			// The init line never dispatches on its own unless a limit of 1
			// makes the buffer complete the moment it opens.
			if m.lineLimit == 1 {
				return m.conclude(EventConcludedLimit)
			}
		}
		return nil
	}

	m.buffer = append(m.buffer, payload)
	if len(m.buffer) >= m.lineLimit {
		return m.conclude(EventConcludedLimit)
	}
	if m.concludeRe != nil && m.concludeRe.MatchString(payload) {
		return m.conclude(EventConcludedPattern)
	}
	return nil
}

// LastEvent reports the buffer transition caused by the most recent Classify
// call, letting the relay loop observe window opens and conclusions without
// reaching into the buffer itself.
func (m *Matcher) LastEvent() Event {
	return m.lastEvent
}

// Buffering reports whether an accumulation window is currently open.
func (m *Matcher) Buffering() bool {
	return len(m.buffer) > 0
}

// conclude assembles the buffered lines into one space-joined candidate,
// clears the buffer, and matches the candidate. Clearing happens whether or
// not the candidate matches: a failed candidate needs a fresh init trigger.
func (m *Matcher) conclude(event Event) []CaptureSet {
	m.lastEvent = event
	candidate := strings.Join(m.buffer, " ")
	m.buffer = m.buffer[:0]
	return m.findAll(candidate)
}

// findAll scans content left to right for all non-overlapping matches of the
// search pattern, producing one capture set per occurrence. Submatch indices
// are used so groups that did not participate can be dropped instead of
// showing up as empty strings.
func (m *Matcher) findAll(content string) []CaptureSet {
	locs := m.search.FindAllStringSubmatchIndex(content, -1)
	if locs == nil {
		return nil
	}

	sets := make([]CaptureSet, 0, len(locs))
	for _, loc := range locs {
		set := make(CaptureSet, 0, len(loc)/2)
		for i := 0; i < len(loc); i += 2 {
			if loc[i] < 0 {
				continue
			}
			set = append(set, content[loc[i]:loc[i+1]])
		}
		sets = append(sets, set)
	}
	return sets
}
