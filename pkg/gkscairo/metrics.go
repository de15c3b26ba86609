package gkscairo

import (
	"errors"
	"expvar"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts renders. It uses Go's expvar package for exposition.
// Safe for concurrent use.
type Metrics struct {
	renders       atomic.Int64
	failures      atomic.Int64
	configErrors  atomic.Int64
	luaErrors     atomic.Int64
	renderErrors  atomic.Int64
	ioErrors      atomic.Int64
	reloads       atomic.Int64
	bytesWritten  atomic.Int64
	latencyNs     atomic.Int64
	lastRenderUTC atomic.Int64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

var (
	publishOnce sync.Once
	published   atomic.Pointer[Metrics]
)

// RegisterExpvar publishes the counters under gkscairo_* names. The names
// are published once per process and report the most recently registered
// Metrics, so calling it again, from any instance, does not panic.
func (m *Metrics) RegisterExpvar() {
	published.Store(m)
	publishOnce.Do(publishExpvar)
}

func publishExpvar() {
	counter := func(load func(*Metrics) int64) expvar.Func {
		return func() any { return load(published.Load()) }
	}
	expvar.Publish("gkscairo_renders_total", counter(func(m *Metrics) int64 { return m.renders.Load() }))
	expvar.Publish("gkscairo_render_failures_total", counter(func(m *Metrics) int64 { return m.failures.Load() }))
	expvar.Publish("gkscairo_lua_errors_total", counter(func(m *Metrics) int64 { return m.luaErrors.Load() }))
	expvar.Publish("gkscairo_reloads_total", counter(func(m *Metrics) int64 { return m.reloads.Load() }))
	expvar.Publish("gkscairo_bytes_written_total", counter(func(m *Metrics) int64 { return m.bytesWritten.Load() }))
	expvar.Publish("gkscairo_render_latency_avg_ms", expvar.Func(func() any {
		m := published.Load()
		return float64(safeDivide(m.latencyNs.Load(), m.renders.Load())) / 1e6
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Renders      int64
	Failures     int64
	ConfigErrors int64
	LuaErrors    int64
	RenderErrors int64
	IOErrors     int64
	Reloads      int64
	BytesWritten int64

	RenderLatencyAvg time.Duration
	LastRender       time.Time
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Renders:          m.renders.Load(),
		Failures:         m.failures.Load(),
		ConfigErrors:     m.configErrors.Load(),
		LuaErrors:        m.luaErrors.Load(),
		RenderErrors:     m.renderErrors.Load(),
		IOErrors:         m.ioErrors.Load(),
		Reloads:          m.reloads.Load(),
		BytesWritten:     m.bytesWritten.Load(),
		RenderLatencyAvg: safeDivide(m.latencyNs.Load(), m.renders.Load()),
	}
	if ns := m.lastRenderUTC.Load(); ns != 0 {
		s.LastRender = time.Unix(0, ns).UTC()
	}
	return s
}

// RecordRender records one finished render and its outcome.
func (m *Metrics) RecordRender(d time.Duration, written int64, err error) {
	if m == nil {
		return
	}
	m.renders.Add(1)
	m.latencyNs.Add(d.Nanoseconds())
	m.bytesWritten.Add(written)
	m.lastRenderUTC.Store(time.Now().UnixNano())
	if err == nil {
		return
	}
	m.failures.Add(1)
	category := ErrorCategoryUnknown
	var ce *CategorizedError
	if errors.As(err, &ce) {
		category = ce.Category
	}
	switch category {
	case ErrorCategoryConfig:
		m.configErrors.Add(1)
	case ErrorCategoryLua:
		m.luaErrors.Add(1)
	case ErrorCategoryRender:
		m.renderErrors.Add(1)
	case ErrorCategoryIO:
		m.ioErrors.Add(1)
	}
}

// IncrementReloads records a change-triggered re-render.
func (m *Metrics) IncrementReloads() {
	if m == nil {
		return
	}
	m.reloads.Add(1)
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.renders, &m.failures, &m.configErrors, &m.luaErrors, &m.renderErrors,
		&m.ioErrors, &m.reloads, &m.bytesWritten, &m.latencyNs, &m.lastRenderUTC,
	} {
		c.Store(0)
	}
}

// safeDivide performs safe division, returning 0 for divide by zero.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}
