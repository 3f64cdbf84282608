package metrics

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Sample is a single exposed value with its label set.
type Sample struct {
	Labels map[string]string
	Value  float64
}

// Metric is implemented by all metric kinds held in a Registry.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	Collect() []Sample
}

// atomicFloat64 stores a float64 as raw bits for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

func (a *atomicFloat64) Store(v float64) {
	atomic.StoreUint64(&a.bits, math.Float64bits(v))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(next)) {
			return
		}
	}
}

// Counter is a monotonically increasing metric with optional labels.
type Counter struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]*labeledValue
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	name string
	help string
	val  atomicFloat64
}

type labeledValue struct {
	labels map[string]string
	value  atomicFloat64
}

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// Help returns the help text.
func (c *Counter) Help() string { return c.help }

// Type returns the metric type.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Inc increments the unlabeled series by one.
func (c *Counter) Inc() { c.With().Add(1) }

// Add adds delta to the unlabeled series. Negative deltas are ignored;
// counters only move forward.
func (c *Counter) Add(delta float64) {
	if delta < 0 {
		return
	}
	c.With().Add(delta)
}

// With returns the series for the given label values, creating it on first
// use. The number of values must match the label names the counter was
// registered with; mismatches panic, since label sets are fixed at call
// sites, not data-driven.
func (c *Counter) With(values ...string) *Series {
	if len(values) != len(c.labelNames) {
		panic(fmt.Sprintf("metrics: counter %s expects %d labels, got %d", c.name, len(c.labelNames), len(values)))
	}

	key := strings.Join(values, "\x00")
	c.mu.RLock()
	lv, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return &Series{lv: lv}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if lv, ok = c.values[key]; !ok {
		labels := make(map[string]string, len(c.labelNames))
		for i, n := range c.labelNames {
			labels[n] = values[i]
		}
		lv = &labeledValue{labels: labels}
		c.values[key] = lv
	}
	return &Series{lv: lv}
}

// Collect returns all series of the counter.
func (c *Counter) Collect() []Sample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	samples := make([]Sample, 0, len(c.values))
	for _, lv := range c.values {
		samples = append(samples, Sample{Labels: lv.labels, Value: lv.value.Load()})
	}
	return samples
}

// Series addresses one label combination of a counter.
type Series struct {
	lv *labeledValue
}

// Inc increments the series by one.
func (s *Series) Inc() { s.lv.value.Add(1) }

// Add adds delta to the series. Negative deltas are ignored.
func (s *Series) Add(delta float64) {
	if delta >= 0 {
		s.lv.value.Add(delta)
	}
}

// Value returns the current series value.
func (s *Series) Value() float64 { return s.lv.value.Load() }

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// Help returns the help text.
func (g *Gauge) Help() string { return g.help }

// Type returns the metric type.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// Set stores the gauge value.
func (g *Gauge) Set(v float64) { g.val.Store(v) }

// Value returns the current gauge value.
func (g *Gauge) Value() float64 { return g.val.Load() }

// Collect returns the gauge's single sample.
func (g *Gauge) Collect() []Sample {
	return []Sample{{Value: g.val.Load()}}
}

// Registry holds named metrics and renders them in Prometheus text format.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	byName  map[string]Metric
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Metric)}
}

// NewCounter registers and returns a counter. Registering a duplicate name
// panics; metric names are program constants.
func (r *Registry) NewCounter(name, help string, labelNames ...string) *Counter {
	c := &Counter{
		name:       name,
		help:       help,
		labelNames: labelNames,
		values:     make(map[string]*labeledValue),
	}
	r.register(c)
	return c
}

// NewGauge registers and returns a gauge.
func (r *Registry) NewGauge(name, help string) *Gauge {
	g := &Gauge{name: name, help: help}
	r.register(g)
	return g
}

func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[m.Name()]; dup {
		panic("metrics: duplicate metric name " + m.Name())
	}
	r.byName[m.Name()] = m
	r.metrics = append(r.metrics, m)
}

// WriteText renders every registered metric in Prometheus text exposition
// format, metrics in registration order and series sorted by label values
// for stable output.
func (r *Registry) WriteText(w *strings.Builder) {
	r.mu.RLock()
	metrics := make([]Metric, len(r.metrics))
	copy(metrics, r.metrics)
	r.mu.RUnlock()

	for _, m := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", m.Name(), m.Help())
		fmt.Fprintf(w, "# TYPE %s %s\n", m.Name(), m.Type())

		samples := m.Collect()
		sort.Slice(samples, func(i, j int) bool {
			return formatLabels(samples[i].Labels) < formatLabels(samples[j].Labels)
		})
		for _, s := range samples {
			if labels := formatLabels(s.Labels); labels != "" {
				fmt.Fprintf(w, "%s{%s} %g\n", m.Name(), labels, s.Value)
			} else {
				fmt.Fprintf(w, "%s %g\n", m.Name(), s.Value)
			}
		}
	}
}

// Handler returns an HTTP handler serving the text exposition.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var b strings.Builder
		r.WriteText(&b)
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(b.String()))
	})
}

// formatLabels renders a label map as name="value" pairs, sorted by name.
func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	names := make([]string, 0, len(labels))
	for n := range labels {
		names = append(names, n)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, n := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%q", n, labels[n]))
	}
	return strings.Join(pairs, ",")
}
