package params

import (
	"time"

	"github.com/ethereum/go-ethereum/metrics"
)

func init() {
	metrics.Enabled = true
}

// ConfigName is the base name of the config file, without extension.
const ConfigName = ".mgrsd"

// EnvPrefix prefixes environment variables overriding config, eg. MGRSD_VERBOSITY.
const EnvPrefix = "MGRSD"

// DefaultPrecision is the MGRS precision used when none is asked for: 1 m.
var DefaultPrecision = 5

// DefaultBatchSize is the number of converted lines written at a time.
var DefaultBatchSize = 1_000

var DefaultMeterInterval = 5 * time.Second
