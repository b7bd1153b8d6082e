package webd

import (
	"encoding/json"
	"strconv"
	"sync/atomic"

	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/lattice"
	"github.com/rotblauer/mgrsd/metrics"
)

// viewportMessage is what a client sends whenever its map moves.
type viewportMessage struct {
	BBox [4]float64 `json:"bbox"`
	Zoom int        `json:"zoom"`
}

// sessionGrid is the last grid sent to a session.
type sessionGrid struct {
	Key  uint64
	Body []byte
}

const sessionIDKey = "id"

var sessionCount atomic.Uint64

func sessionID(s *melody.Session) string {
	if v, ok := s.Get(sessionIDKey); ok {
		return v.(string)
	}
	return ""
}

// initMelody sets up the websocket handler.
// Each viewport message is answered with its graticule. A session repeating
// its last viewport is answered from the session without a cache lookup.
func (s *WebDaemon) initMelody() {
	s.melodyInstance = melody.New()

	s.melodyInstance.HandleConnect(func(session *melody.Session) {
		session.Set(sessionIDKey, strconv.FormatUint(sessionCount.Add(1), 10))
		s.logger.Info("Websocket connected", "id", sessionID(session), "remote", session.Request.RemoteAddr)
	})

	s.melodyInstance.HandleMessage(func(session *melody.Session, msg []byte) {
		s.handleViewport(session, msg)
	})

	s.melodyInstance.HandleDisconnect(func(session *melody.Session) {
		s.sessions.Delete(sessionID(session))
		s.logger.Info("Websocket disconnected", "id", sessionID(session), "remote", session.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(session *melody.Session, e error) {
		s.logger.Warn("Websocket error", "id", sessionID(session), "error", e)
	})
}

type socketError struct {
	Error string `json:"error"`
}

func (s *WebDaemon) handleViewport(session *melody.Session, msg []byte) {
	id := sessionID(session)
	reply := func(b []byte) {
		if err := session.Write(b); err != nil {
			s.logger.Warn("Websocket write failed", "id", id, "error", err)
		}
	}
	fail := func(err error) {
		b, _ := json.Marshal(socketError{Error: err.Error()})
		reply(b)
	}

	var m viewportMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		s.logger.Debug("Bad viewport message", "id", id, "error", err)
		fail(common.ErrFormat)
		return
	}
	zoom := common.SlippyZoomLevelT(m.Zoom)
	if !zoom.Valid() {
		fail(common.ErrOutOfRange)
		return
	}
	vp := lattice.Viewport{
		Bound: orb.Bound{Min: orb.Point{m.BBox[0], m.BBox[1]}, Max: orb.Point{m.BBox[2], m.BBox[3]}},
		Zoom:  zoom,
	}
	if err := lattice.CheckBound(vp.Bound); err != nil {
		fail(err)
		return
	}

	key, err := hashViewport(vp)
	if err != nil {
		fail(err)
		return
	}
	if last := s.sessions.Get(id); last != nil && last.Value().Key == key {
		metrics.Counter("webd/socket/repeat").Inc(1)
		reply(last.Value().Body)
		return
	}
	body, _, _, err := s.renderGrid(vp)
	if err != nil {
		fail(err)
		return
	}
	s.sessions.Set(id, sessionGrid{Key: key, Body: body}, ttlcache.DefaultTTL)
	reply(body)
}
