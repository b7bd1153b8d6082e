package influxdb

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gometrics "github.com/ethereum/go-ethereum/metrics"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rotblauer/mgrsd/metrics"
	"github.com/rotblauer/mgrsd/params"
)

// Measurement is the InfluxDB measurement registry snapshots are written to.
const Measurement = "mgrsd"

// ExportRegistry posts a snapshot of the registry every config interval
// until the context is done, and once more on the way out.
// The last write error encountered is returned.
func ExportRegistry(ctx context.Context, config *params.MetricsConfig, r gometrics.Registry) error {
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(config.URL, config.Token, opts)
	writeAPI := client.WriteAPI(config.Org, config.Bucket)

	// Errors must be read before any write or the writer blocks.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				slog.Warn("InfluxDB write failed", "error", e)
				err = e
			}
		}
	}()

	interval := config.Interval
	if interval <= 0 {
		interval = params.DefaultMetricsConfig().Interval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	write := func(t time.Time) {
		p := influxdb2.NewPointWithMeasurement(Measurement).SetTime(t)
		for _, f := range metrics.Snapshot(r) {
			p.AddField(f.Name, f.Value)
		}
		writeAPI.WritePoint(p)
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case t := <-ticker.C:
			write(t)
		}
	}
	write(time.Now())
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
