package webd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/params"
)

type WebDaemon struct {
	Config         *params.WebDaemonConfig
	logger         *slog.Logger
	melodyInstance *melody.Melody
	started        time.Time

	// index finds the zones a viewport overlaps, for gap reporting.
	index *gzd.Index

	// gridCache holds rendered /grid bodies by request hash.
	gridCache *lru.Cache[uint64, []byte]

	// sessions remembers the last viewport each websocket client drew.
	sessions *ttlcache.Cache[string, sessionGrid]
}

func NewWebDaemon(config *params.WebDaemonConfig) (*WebDaemon, error) {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	if config.Grid == nil {
		config.Grid = params.DefaultGridConfig()
	}
	if err := config.Grid.Thresholds.Validate(); err != nil {
		return nil, err
	}
	size := config.GridCacheSize
	if size <= 0 {
		size = params.DefaultWebDaemonConfig().GridCacheSize
	}
	gridCache, err := lru.New[uint64, []byte](size)
	if err != nil {
		return nil, err
	}
	return &WebDaemon{
		Config:  config,
		logger:  slog.With("d", "web"),
		started: time.Now(),
		index:   gzd.NewIndex(),

		gridCache: gridCache,
		sessions: ttlcache.New[string, sessionGrid](
			ttlcache.WithTTL[string, sessionGrid](config.SessionTTL),
		),
	}, nil
}

// Run serves the router on the configured listener until the context is done,
// then shuts the server down.
func (s *WebDaemon) Run(ctx context.Context) error {
	listener, err := net.Listen(s.Config.Network, s.Config.Address)
	if err != nil {
		return err
	}
	server := &http.Server{Handler: s.NewRouter()}

	go s.sessions.Start()
	defer s.sessions.Stop()

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web daemon", "listen", s.Config.ListenerConfig)
		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("Stopping web daemon")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.melodyInstance.Close()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *WebDaemon) NewRouter() *mux.Router {
	s.initMelody()

	router := mux.NewRouter().StrictSlash(false)
	router.Use(s.loggingMiddleware)

	// Handle websocket.
	router.Path("/socket").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.melodyInstance.HandleRequest(w, r); err != nil {
			s.logger.Warn("Websocket upgrade failed", "error", err)
		}
	})

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	apiJSONRoutes.Use(contentTypeMiddlewareFunc("application/json"))

	apiJSONRoutes.Path("/status").HandlerFunc(s.statusReport).Methods(http.MethodGet)
	apiJSONRoutes.Path("/mgrs/forward").HandlerFunc(handleForward).Methods(http.MethodGet)
	apiJSONRoutes.Path("/mgrs/inverse/{ref}").HandlerFunc(handleInverse).Methods(http.MethodGet)
	apiJSONRoutes.Path("/gzd/{label}").HandlerFunc(handleZone).Methods(http.MethodGet)
	apiJSONRoutes.Path("/visible").HandlerFunc(s.handleVisible).Methods(http.MethodGet)

	geoJSONRoutes := apiRoutes.NewRoute().Subrouter()
	geoJSONRoutes.Use(contentTypeMiddlewareFunc("application/geo+json"))
	geoJSONRoutes.Path("/grid").HandlerFunc(s.handleGrid).Methods(http.MethodGet)

	return router
}
