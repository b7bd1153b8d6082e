package webd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/graticule"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/lattice"
	"github.com/rotblauer/mgrsd/metrics"
	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/params"
	"github.com/rotblauer/mgrsd/utm"
	"github.com/rotblauer/mgrsd/visible"
	"github.com/shopspring/decimal"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// errorStatus maps bad input to 400 and anything else to 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrFormat),
		errors.Is(err, common.ErrOutOfRange),
		errors.Is(err, common.ErrInvalidZone),
		errors.Is(err, lattice.ErrTooDense):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "url", r.URL, "error", err)
	} else {
		slog.Debug("Bad request", "url", r.URL, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

// fixed rounds v to places decimal places for output.
func fixed(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func fixedPoint(pt orb.Point) [2]float64 {
	return [2]float64{fixed(pt.Lon(), 7), fixed(pt.Lat(), 7)}
}

type utmResponse struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
	Zone     string  `json:"zone"`
}

func newUTMResponse(c utm.Coordinate) utmResponse {
	return utmResponse{
		Easting:  fixed(c.Easting, 2),
		Northing: fixed(c.Northing, 2),
		Zone:     c.Zone(),
	}
}

type forwardResponse struct {
	MGRS string      `json:"mgrs"`
	GZD  string      `json:"gzd"`
	UTM  utmResponse `json:"utm"`
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, common.ErrFormat)
	}
	return v, nil
}

// handleForward converts ?lat=&lon= to MGRS, at ?precision= digits per axis.
func handleForward(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		writeError(w, r, err)
		return
	}
	precision := params.DefaultPrecision
	if p := r.URL.Query().Get("precision"); p != "" {
		if precision, err = strconv.Atoi(p); err != nil {
			writeError(w, r, fmt.Errorf("precision %q: %w", p, common.ErrFormat))
			return
		}
	}

	c, err := utm.Forward(lat, lon)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ref, err := mgrs.Encode(c, precision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	precise, err := utm.ForwardPrecise(lat, lon)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.Counter("webd/forward").Inc(1)
	writeJSON(w, forwardResponse{MGRS: ref, GZD: c.Zone(), UTM: newUTMResponse(precise)})
}

type inverseResponse struct {
	BBox     [4]float64  `json:"bbox"`
	Center   [2]float64  `json:"center"`
	UTM      utmResponse `json:"utm"`
	Accuracy float64     `json:"accuracy"`
}

// handleInverse returns the area an MGRS reference stands for.
func handleInverse(w http.ResponseWriter, r *http.Request) {
	c, err := mgrs.Decode(mux.Vars(r)["ref"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	box, err := utm.InverseBox(c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b := box.Bound()
	metrics.Counter("webd/inverse").Inc(1)
	writeJSON(w, inverseResponse{
		BBox: [4]float64{
			fixed(b.Min.Lon(), 7), fixed(b.Min.Lat(), 7),
			fixed(b.Max.Lon(), 7), fixed(b.Max.Lat(), 7),
		},
		Center:   fixedPoint(b.Center()),
		UTM:      newUTMResponse(c),
		Accuracy: c.Accuracy,
	})
}

// handleZone returns the boundary of a grid zone as a GeoJSON polygon.
func handleZone(w http.ResponseWriter, r *http.Request) {
	z, err := gzd.Parse(mux.Vars(r)["label"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := z.Corners()
	if err != nil {
		writeError(w, r, err)
		return
	}
	f := geojson.NewFeature(orb.Polygon{c.Ring()})
	f.Properties["gzd"] = z.String()
	writeJSON(w, f)
}

func parseZoom(s string) (common.SlippyZoomLevelT, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("zoom %q: %w", s, common.ErrFormat)
	}
	z := common.SlippyZoomLevelT(n)
	if !z.Valid() {
		return 0, fmt.Errorf("zoom %d: %w", n, common.ErrOutOfRange)
	}
	return z, nil
}

type visibleResponse struct {
	Zones []gzd.Zone `json:"zones"`
	Gaps  []gzd.Zone `json:"gaps"`
}

// handleVisible lists the zones in ?bbox=, and those the corner rules missed.
func (s *WebDaemon) handleVisible(w http.ResponseWriter, r *http.Request) {
	b, err := lattice.ParseBound(r.URL.Query().Get("bbox"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	corners := visible.CornersOf(b)
	zones, err := visible.Resolve(corners)
	if err != nil {
		writeError(w, r, err)
		return
	}
	gaps := visible.Gaps(corners, zones, s.index)
	if gaps == nil {
		gaps = []gzd.Zone{}
	}
	writeJSON(w, visibleResponse{Zones: zones, Gaps: gaps})
}

// gridKey identifies a rendered grid.
type gridKey struct {
	West, South, East, North float64
	Zoom                     int
}

func hashViewport(vp lattice.Viewport) (uint64, error) {
	return hashstructure.Hash(gridKey{
		West: vp.Bound.Min.Lon(), South: vp.Bound.Min.Lat(),
		East: vp.Bound.Max.Lon(), North: vp.Bound.Max.Lat(),
		Zoom: int(vp.Zoom),
	}, hashstructure.FormatV2, nil)
}

// renderGrid returns the GeoJSON graticule of the viewport, from cache when
// the same viewport was drawn before.
func (s *WebDaemon) renderGrid(vp lattice.Viewport) (body []byte, key uint64, hit bool, err error) {
	key, err = hashViewport(vp)
	if err != nil {
		return nil, 0, false, err
	}
	if body, ok := s.gridCache.Get(key); ok {
		metrics.Counter("webd/grid/hit").Inc(1)
		return body, key, true, nil
	}
	metrics.Counter("webd/grid/miss").Inc(1)

	res, err := graticule.Render(vp, s.Config.Grid, graticule.WithIndex(s.index))
	if err != nil {
		return nil, key, false, err
	}
	for _, skip := range res.Skipped {
		s.logger.Warn("Zone skipped", "skip", skip)
	}
	body, err = json.Marshal(res.FeatureCollection())
	if err != nil {
		return nil, key, false, err
	}
	s.gridCache.Add(key, body)
	return body, key, false, nil
}

// handleGrid draws the graticule of ?bbox= at ?zoom= as a GeoJSON FeatureCollection.
func (s *WebDaemon) handleGrid(w http.ResponseWriter, r *http.Request) {
	b, err := lattice.ParseBound(r.URL.Query().Get("bbox"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	zoom, err := parseZoom(r.URL.Query().Get("zoom"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, _, hit, err := s.renderGrid(lattice.Viewport{Bound: b, Zoom: zoom})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

type webDaemonStatus struct {
	StartedAt time.Time               `json:"started_at"`
	Uptime    string                  `json:"uptime"`
	Config    *params.WebDaemonConfig `json:"config"`
	WSOpen    bool                    `json:"ws_open"`
	WSConns   int                     `json:"ws_conns"`
	Cached    int                     `json:"cached"`
	Sessions  int                     `json:"sessions"`
	Metrics   map[string]float64      `json:"metrics"`
}

func (s *WebDaemon) statusReport(w http.ResponseWriter, r *http.Request) {
	st := webDaemonStatus{
		StartedAt: s.started,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		WSOpen:    !s.melodyInstance.IsClosed(),
		WSConns:   s.melodyInstance.Len(),
		Config:    s.Config,
		Cached:    s.gridCache.Len(),
		Sessions:  s.sessions.Len(),
		Metrics:   map[string]float64{},
	}
	for _, f := range metrics.Snapshot(metrics.Registry) {
		st.Metrics[f.Name] = f.Value
	}
	j, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal status", "error", err)
		http.Error(w, "Failed to marshal status", http.StatusInternalServerError)
		return
	}
	if _, err = w.Write(j); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}
