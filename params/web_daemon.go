package params

import "time"

type WebDaemonConfig struct {
	ListenerConfig
	Grid *GridConfig

	// GridCacheSize is the number of rendered grid responses kept.
	GridCacheSize int

	// SessionTTL is how long a websocket session's last viewport is
	// remembered after its last message.
	SessionTTL time.Duration
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		ListenerConfig: DefaultWebListenerConfig(),
		Grid:           DefaultGridConfig(),
		GridCacheSize:  512,
		SessionTTL:     10 * time.Minute,
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	d := DefaultWebDaemonConfig()
	d.ListenerConfig = ListenerConfig{
		Network: "tcp",
		Address: "localhost:3333",
	}
	d.GridCacheSize = 8
	d.SessionTTL = time.Minute
	return d
}
