package params

import (
	"os"
	"time"
)

// MetricsConfig points the metrics exporter at an InfluxDB v2 bucket.
// The exporter is off while URL is empty.
type MetricsConfig struct {
	URL      string
	Token    string
	Org      string
	Bucket   string
	Interval time.Duration
}

func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		URL:      os.Getenv("INFLUXDB_URL"),
		Token:    os.Getenv("INFLUXDB_TOKEN"),
		Org:      os.Getenv("INFLUXDB_ORG"),
		Bucket:   os.Getenv("INFLUXDB_BUCKET"),
		Interval: 30 * time.Second,
	}
}

func (c *MetricsConfig) Enabled() bool {
	return c != nil && c.URL != ""
}
