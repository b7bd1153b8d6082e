package webd

import (
	"net/http/httptest"
	"testing"

	"github.com/rotblauer/mgrsd/params"
)

// newTestWebDaemon creates a new WebDaemon for testing purposes.
func newTestWebDaemon(t *testing.T) *WebDaemon {
	t.Helper()
	daemon, err := NewWebDaemon(params.DefaultTestWebDaemonConfig())
	if err != nil {
		t.Fatal(err)
	}
	return daemon
}

// serve runs a request through the daemon's router.
func serve(t *testing.T, d *WebDaemon, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "http://mgrs.example.org"+target, nil)
	w := httptest.NewRecorder()
	d.NewRouter().ServeHTTP(w, req)
	return w
}
