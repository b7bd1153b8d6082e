// Package metrics keeps the grid engine's counters and timers in a
// go-ethereum metrics registry.
package metrics

import (
	"sort"

	gometrics "github.com/ethereum/go-ethereum/metrics"
	_ "github.com/rotblauer/mgrsd/params" // enables go-ethereum metrics
)

// Registry holds every metric the engine records.
var Registry = gometrics.NewRegistry()

func Counter(name string) gometrics.Counter {
	return gometrics.GetOrRegisterCounter(name, Registry)
}

func Timer(name string) gometrics.Timer {
	return gometrics.GetOrRegisterTimer(name, Registry)
}

// Field is one value of a registry snapshot.
type Field struct {
	Name  string
	Value float64
}

// Snapshot flattens the registry into named values, sorted by name.
// Counters give their count, timers their count, mean and 95th
// percentile in nanoseconds.
func Snapshot(r gometrics.Registry) []Field {
	var fields []Field
	r.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case gometrics.Counter:
			fields = append(fields, Field{name, float64(m.Snapshot().Count())})
		case gometrics.Timer:
			s := m.Snapshot()
			fields = append(fields,
				Field{name + ".count", float64(s.Count())},
				Field{name + ".mean", s.Mean()},
				Field{name + ".p95", s.Percentile(0.95)},
			)
		}
	})
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}
