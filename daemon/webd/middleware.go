package webd

import (
	"io"
	"net"
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
)

func permissiveCorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		next.ServeHTTP(w, r)
	})
}

func contentTypeMiddlewareFunc(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

// https://github.com/gorilla/mux#middleware

// remoteHost is the client address, followed by any proxies it came through.
func remoteHost(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}
	for _, v := range req.Header.Values("X-Forwarded-For") {
		host += "->" + v
	}
	return host
}

// writeLog logs a served request.
// The writer handed over by the logging handler is unused; entries go to the daemon's logger.
func (s *WebDaemon) writeLog(_ io.Writer, params ghandlers.LogFormatterParams) {
	req := params.Request
	uri := req.RequestURI
	if uri == "" {
		uri = params.URL.RequestURI()
	}
	s.logger.Info("Served",
		"host", remoteHost(req),
		"method", req.Method,
		"uri", uri,
		"proto", req.Proto,
		"status", params.StatusCode,
		"size", params.Size,
		"took", time.Since(params.TimeStamp).Round(time.Microsecond),
	)
}

func (s *WebDaemon) loggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.CustomLoggingHandler(io.Discard, next, s.writeLog)
}
