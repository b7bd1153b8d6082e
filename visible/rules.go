package visible

import (
	"github.com/rotblauer/mgrsd/gzd"
)

var (
	zone31U = gzd.Zone{Number: 31, Band: 'U'}
	zone31W = gzd.Zone{Number: 31, Band: 'W'}
	zone32U = gzd.Zone{Number: 32, Band: 'U'}
	zone32V = gzd.Zone{Number: 32, Band: 'V'}
)

// ruleNorwayWest adds zone 31 for every band in view when the northwest
// corner is in 32V, which reaches 3° into zone 31 and hides 31V and the
// zones below it from corner sampling.
func ruleNorwayWest(s *span) {
	if s.nw != zone32V {
		return
	}
	for _, n := range s.numbers {
		if n == 31 {
			return
		}
	}
	s.numbers = append([]int{31}, s.numbers...)
}

// ruleSvalbardGaps drops 32X, 34X and 36X, which do not exist.
func ruleSvalbardGaps(s *span) {
	kept := s.zones[:0]
	for _, z := range s.zones {
		if z.Band == 'X' && (z.Number == 32 || z.Number == 34 || z.Number == 36) {
			continue
		}
		kept = append(kept, z)
	}
	s.zones = kept
}

// rule31WNeeds32V adds 32V when 31W is in view, since 32V runs under
// the west half of 31W's southern edge.
func rule31WNeeds32V(s *span) {
	if s.has(zone31W) {
		s.add(zone32V)
	}
}

// rule32VNeeds31U adds 31U when the east side of the viewport sits on
// the 32V/32U line, or the whole top edge is inside 32V.
func rule32VNeeds31U(s *span) {
	if (s.ne == zone32V && s.se == zone32U) || (s.nw == zone32V && s.ne == zone32V) {
		s.add(zone31U)
	}
}
