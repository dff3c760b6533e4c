package selection

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/BinkeXu/covid-world-map/internal/domain"
	"github.com/BinkeXu/covid-world-map/internal/observability"
)

// HoverNotifier receives the summary of a country the pointer has rested on.
type HoverNotifier interface {
	NotifyHover(summary domain.CountrySummary)
}

// Debouncer suppresses hover noise: a country must stay under the pointer
// for the full delay before its highlight is broadcast. Sweeping the pointer
// across the map re-arms the delay at every border crossing.
type Debouncer struct {
	delay    time.Duration
	source   SnapshotSource
	notifier HoverNotifier
	metrics  *observability.Metrics
	clk      clockwork.Clock

	mu      sync.Mutex
	timer   clockwork.Timer
	pending string
}

// NewDebouncer creates a hover debouncer. A nil clock means real time.
func NewDebouncer(delay time.Duration, source SnapshotSource, notifier HoverNotifier, metrics *observability.Metrics, clk clockwork.Clock) *Debouncer {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Debouncer{
		delay:    delay,
		source:   source,
		notifier: notifier,
		metrics:  metrics,
		clk:      clk,
	}
}

// Hover (re)arms the delay for a country. Only the country still pending
// when the timer fires is resolved and broadcast.
func (d *Debouncer) Hover(country string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = country
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clk.AfterFunc(d.delay, func() { d.fire(country) })
}

// Clear cancels any pending hover, typically because the pointer left the map.
func (d *Debouncer) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = ""
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(country string) {
	d.mu.Lock()
	// A fired timer can race a re-arm or Clear; the pending name decides
	// whether this firing still matters.
	if d.pending != country {
		d.mu.Unlock()
		return
	}
	d.pending = ""
	d.timer = nil
	d.mu.Unlock()

	snap := d.source.Snapshot()
	if snap == nil {
		return
	}
	summary, ok := snap.Summary(country)
	if !ok {
		return
	}

	d.metrics.HoverNotifications.Inc()
	d.notifier.NotifyHover(summary)
}
