package webd

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

func TestWebDaemon_ping(t *testing.T) {
	req := httptest.NewRequest("GET", "http://mgrs.example.org/ping", nil)
	w := httptest.NewRecorder()
	pingPong(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	t.Log(resp.StatusCode)
	t.Log(string(body))
	if resp.StatusCode != 200 {
		t.Fatalf("status code not 200")
	}
	if string(body) != "pong" {
		t.Errorf("body is not pong: %s", string(body))
	}
}

func TestWebDaemon_statusReport(t *testing.T) {
	d := newTestWebDaemon(t)
	w := serve(t, d, "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	status := webDaemonStatus{}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Uptime == "" {
		t.Fatal("uptime is empty")
	}
	if status.Config == nil || status.Config.Address != "localhost:3333" {
		t.Errorf("config %+v", status.Config)
	}
}

func TestWebDaemon_forward(t *testing.T) {
	d := newTestWebDaemon(t)
	w := serve(t, d, "/mgrs/forward?lat=40.7128&lon=-74.006")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
	body := w.Body.Bytes()
	t.Log(string(body))
	if got := gjson.GetBytes(body, "mgrs").String(); got != "18TWL8395907350" {
		t.Errorf("mgrs %q", got)
	}
	if got := gjson.GetBytes(body, "gzd").String(); got != "18T" {
		t.Errorf("gzd %q", got)
	}
	if got := gjson.GetBytes(body, "utm.easting").Float(); got < 583959 || got > 583960 {
		t.Errorf("easting %v", got)
	}

	w = serve(t, d, "/mgrs/forward?lat=40.7128&lon=-74.006&precision=2")
	if got := gjson.GetBytes(w.Body.Bytes(), "mgrs").String(); got != "18TWL8307" {
		t.Errorf("precision 2: %q", got)
	}
}

func TestWebDaemon_forward_BadRequest(t *testing.T) {
	d := newTestWebDaemon(t)
	for _, target := range []string{
		"/mgrs/forward?lat=north&lon=0",
		"/mgrs/forward?lat=91&lon=0",
		"/mgrs/forward?lat=0&lon=0&precision=6",
	} {
		if w := serve(t, d, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", target, w.Code)
		}
	}
}

func TestWebDaemon_inverse(t *testing.T) {
	d := newTestWebDaemon(t)
	w := serve(t, d, "/mgrs/inverse/18TWL8395907350")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	body := w.Body.Bytes()
	t.Log(string(body))
	if got := gjson.GetBytes(body, "accuracy").Float(); got != 1 {
		t.Errorf("accuracy %v", got)
	}
	lon, lat := gjson.GetBytes(body, "center.0").Float(), gjson.GetBytes(body, "center.1").Float()
	if math.Abs(lon+74.006) > 1e-4 || math.Abs(lat-40.7128) > 1e-4 {
		t.Errorf("center %v, %v", lon, lat)
	}
	if got := gjson.GetBytes(body, "utm.zone").String(); got != "18T" {
		t.Errorf("zone %q", got)
	}
	if got := gjson.GetBytes(body, "bbox.#").Int(); got != 4 {
		t.Errorf("bbox has %d values", got)
	}

	if w := serve(t, d, "/mgrs/inverse/18TIL"); w.Code != http.StatusBadRequest {
		t.Errorf("18TIL: status %d", w.Code)
	}
}

func TestWebDaemon_zone(t *testing.T) {
	d := newTestWebDaemon(t)
	w := serve(t, d, "/gzd/31V")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	body := w.Body.Bytes()
	if got := gjson.GetBytes(body, "geometry.type").String(); got != "Polygon" {
		t.Errorf("geometry %q", got)
	}
	ring := gjson.GetBytes(body, "geometry.coordinates.0")
	if ring.Get("#").Int() != 5 || ring.Get("0").Raw != "[0,56]" || ring.Get("2").Raw != "[3,64]" {
		t.Errorf("ring %s", ring.Raw)
	}

	if w := serve(t, d, "/gzd/32X"); w.Code != http.StatusBadRequest {
		t.Errorf("32X: status %d", w.Code)
	}
}

func TestWebDaemon_visible(t *testing.T) {
	d := newTestWebDaemon(t)
	w := serve(t, d, "/visible?bbox=1,62,5,66")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	var got []string
	for _, z := range gjson.GetBytes(w.Body.Bytes(), "zones").Array() {
		got = append(got, z.String())
	}
	if strings.Join(got, ",") != "31V,31W,32V" {
		t.Errorf("zones %v", got)
	}
	if n := gjson.GetBytes(w.Body.Bytes(), "gaps.#").Int(); n != 0 {
		t.Errorf("gaps %s", gjson.GetBytes(w.Body.Bytes(), "gaps").Raw)
	}

	for _, bbox := range []string{"1,62,5", "5,62,1,66", "a,b,c,d"} {
		if w := serve(t, d, "/visible?bbox="+bbox); w.Code != http.StatusBadRequest {
			t.Errorf("bbox %s: status %d", bbox, w.Code)
		}
	}
}

func TestWebDaemon_grid(t *testing.T) {
	d := newTestWebDaemon(t)
	target := "/grid?bbox=-75.5,39,-72.5,42&zoom=6"
	w := serve(t, d, target)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("content type %q", ct)
	}
	if got := w.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first request X-Cache %q", got)
	}
	body := w.Body.Bytes()
	if got := gjson.GetBytes(body, "type").String(); got != "FeatureCollection" {
		t.Errorf("type %q", got)
	}
	if got := gjson.GetBytes(body, "interval").String(); got != "100 km" {
		t.Errorf("interval %q", got)
	}
	if gjson.GetBytes(body, "features.#").Int() == 0 {
		t.Error("no features")
	}

	again := serve(t, d, target)
	if got := again.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second request X-Cache %q", got)
	}
	if again.Body.String() != w.Body.String() {
		t.Error("cached body differs")
	}

	for _, bad := range []string{
		"/grid?bbox=-75.5,39,-72.5,42&zoom=40",
		"/grid?bbox=-75.5,39,-72.5,42",
		"/grid?bbox=-75.5,39&zoom=6",
		"/grid?bbox=-100,20,-60,50&zoom=10", // 1 km over 28 zones
	} {
		if w := serve(t, d, bad); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", bad, w.Code)
		}
	}
}

func TestWebDaemon_socket(t *testing.T) {
	d := newTestWebDaemon(t)
	server := httptest.NewServer(d.NewRouter())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	read := func() []byte {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		return msg
	}

	viewport := `{"bbox":[-75.5,39,-72.5,42],"zoom":6}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(viewport)); err != nil {
		t.Fatal(err)
	}
	first := read()
	if got := gjson.GetBytes(first, "type").String(); got != "FeatureCollection" {
		t.Fatalf("type %q", got)
	}
	if d.sessions.Len() != 1 {
		t.Errorf("%d sessions", d.sessions.Len())
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(viewport)); err != nil {
		t.Fatal(err)
	}
	if second := read(); string(second) != string(first) {
		t.Error("repeated viewport got a different grid")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"bbox":[0,0,1,1],"zoom":99}`)); err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(read(), "error").String(); got == "" {
		t.Error("bad zoom should be answered with an error")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"bbox":[5,0,1,1],"zoom":8}`)); err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(read(), "error").String(); got == "" {
		t.Error("inverted bbox should be answered with an error")
	}
}
