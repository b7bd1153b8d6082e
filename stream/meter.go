package stream

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/mgrsd/common"
)

// Meter logs the throughput of a stream at a fixed interval.
type Meter struct {
	name     string
	interval time.Duration
	started  time.Time
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once

	reg    metrics.Registry
	count  metrics.Counter
	failed metrics.Counter
	rate   metrics.Meter
}

// NewMeter starts a meter logging under name every interval.
func NewMeter(name string, interval time.Duration) *Meter {
	// Won't count without this global setting.
	metrics.Enabled = true

	reg := metrics.NewRegistry()
	m := &Meter{
		name:     name,
		interval: interval,
		started:  time.Now(),
		done:     make(chan struct{}),
		reg:      reg,
		count:    metrics.NewCounter(),
		failed:   metrics.NewCounter(),
		rate:     metrics.NewMeter(),
	}
	if err := reg.Register(name+".count", m.count); err != nil {
		panic(err)
	}
	if err := reg.Register(name+".failed", m.failed); err != nil {
		panic(err)
	}
	if err := reg.Register(name+".meter", m.rate); err != nil {
		panic(err)
	}
	m.ticker = time.NewTicker(interval)
	go m.run()
	return m
}

// Mark counts one element, failed or not.
func (m *Meter) Mark(ok bool) {
	m.count.Inc(1)
	m.rate.Mark(1)
	if !ok {
		m.failed.Inc(1)
	}
}

func (m *Meter) Count() int64 {
	return m.count.Snapshot().Count()
}

func (m *Meter) Failed() int64 {
	return m.failed.Snapshot().Count()
}

func (m *Meter) run() {
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			m.log("Converting")
		}
	}
}

func (m *Meter) log(msg string) {
	snap := m.rate.Snapshot()
	slog.Info(msg, "name", m.name,
		"n", humanize.Comma(m.Count()),
		"failed", humanize.Comma(m.Failed()),
		"rate", common.DecimalToFixed(snap.Rate1(), 0),
		"running", time.Since(m.started).Round(time.Millisecond))
}

// Stop logs a final tally and stops the meter.
func (m *Meter) Stop() {
	if m == nil {
		return
	}
	m.once.Do(func() {
		m.ticker.Stop()
		close(m.done)
		m.rate.Stop()
		m.log("Converted")
	})
}
