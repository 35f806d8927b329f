package app

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/dshills/inertia/internal/scroll/state"
	"github.com/dshills/inertia/internal/scrollview"
)

// Measures recorded by the viewer.
var (
	MeasureFlicks         = stats.Int64("inertia/flicks", "number of releases that started momentum", stats.UnitDimensionless)
	MeasureSnaps          = stats.Int64("inertia/snaps", "number of scrolls that ended with a snap to an edge", stats.UnitDimensionless)
	MeasureStaleReleases  = stats.Int64("inertia/stale_releases", "number of releases past the staleness threshold", stats.UnitDimensionless)
	MeasureMomentumFrames = stats.Int64("inertia/momentum_frames", "number of momentum frames committed", stats.UnitDimensionless)
	MeasureScrollEnds     = stats.Int64("inertia/scroll_ends", "number of completed scroll interactions", stats.UnitDimensionless)
)

// TagAxis tags flicks with the axis they were measured on.
var TagAxis = tag.MustNewKey("axis")

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterViews registers count views for every measure. It is safe to
// call more than once.
func RegisterViews() error {
	registerOnce.Do(func() {
		registerErr = view.Register(
			countView(MeasureFlicks, TagAxis),
			countView(MeasureSnaps),
			countView(MeasureStaleReleases),
			countView(MeasureMomentumFrames),
			countView(MeasureScrollEnds),
		)
	})
	return registerErr
}

func countView(m *stats.Int64Measure, keys ...tag.Key) *view.View {
	return &view.View{
		Name:        m.Name(),
		Description: m.Description(),
		TagKeys:     keys,
		Measure:     m,
		Aggregation: view.Count(),
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Flicks         uint64
	Snaps          uint64
	StaleReleases  uint64
	MomentumFrames uint64
	ScrollEnds     uint64
}

// Metrics counts engine notifications. It implements scrollview.Listener
// and records every count to opencensus as well.
type Metrics struct {
	ctx context.Context

	flicks         atomic.Uint64
	snaps          atomic.Uint64
	stale          atomic.Uint64
	momentumFrames atomic.Uint64
	ends           atomic.Uint64

	// inMomentum is only touched from listener callbacks, which run on
	// the engine thread.
	inMomentum bool
}

// NewMetrics creates a metrics listener.
func NewMetrics() *Metrics {
	return &Metrics{ctx: context.Background()}
}

// ScrollStart implements scrollview.Listener.
func (m *Metrics) ScrollStart(scrollview.StartEvent) {
	m.inMomentum = false
}

// ScrollChange implements scrollview.Listener. Jumps committed by the
// animator between a flick and the end of the scroll are momentum frames.
func (m *Metrics) ScrollChange(e scrollview.ChangeEvent) {
	if !m.inMomentum || e.Source != state.SourceProgrammatic || e.Duration != 0 {
		return
	}
	m.momentumFrames.Add(1)
	stats.Record(m.ctx, MeasureMomentumFrames.M(1))
}

// ScrollEnd implements scrollview.Listener.
func (m *Metrics) ScrollEnd(e scrollview.EndEvent) {
	m.inMomentum = false
	m.ends.Add(1)
	ms := []stats.Measurement{MeasureScrollEnds.M(1)}
	if e.Snapped {
		m.snaps.Add(1)
		ms = append(ms, MeasureSnaps.M(1))
	}
	if e.Stale {
		m.stale.Add(1)
		ms = append(ms, MeasureStaleReleases.M(1))
	}
	stats.Record(m.ctx, ms...)
}

// Flick implements scrollview.Listener.
func (m *Metrics) Flick(e scrollview.FlickEvent) {
	m.inMomentum = true
	m.flicks.Add(1)
	_ = stats.RecordWithTags(m.ctx,
		[]tag.Mutator{tag.Upsert(TagAxis, e.Flick.Axis.String())},
		MeasureFlicks.M(1))
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Flicks:         m.flicks.Load(),
		Snaps:          m.snaps.Load(),
		StaleReleases:  m.stale.Load(),
		MomentumFrames: m.momentumFrames.Load(),
		ScrollEnds:     m.ends.Load(),
	}
}
