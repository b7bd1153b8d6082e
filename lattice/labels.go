package lattice

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rotblauer/mgrsd/clip"
	"github.com/rotblauer/mgrsd/mgrs"
)

// LabelText is the label of a 10 km, 1 km or 100 m grid line with the
// given easting or northing: the value within its 100 km square, in
// kilometers, or in hundreds of meters as three digits.
func LabelText(v float64, interval Interval) string {
	r := math.Mod(v, float64(HundredKm))
	if interval == HundredMeters {
		return fmt.Sprintf("%03d", int(r/100))
	}
	return strconv.Itoa(int(r / 1000))
}

// squareLabels names each 100 km cell at its center. A label is dropped
// when it would not fit between its cell's easting lines on screen.
func (g *grid) squareLabels(vp Viewport, proj Projector, width func(string) float64) []Label {
	west, east := g.eff.Min.Lon(), g.eff.Max.Lon()
	var labels []Label
	for i := 0; i+1 < len(g.eastings); i++ {
		for j := 0; j+1 < len(g.northings); j++ {
			cur := g.at(i, j)
			adjE := g.at(i+1, j)
			if !finite(cur) || !finite(adjE) {
				continue
			}
			if adjE.Lon() > east {
				adjE = orb.Point{east, clip.AdjustedLatitude(clip.Slope(cur, adjE), east, adjE)}
			}
			// The first column leans on its east neighbor for height,
			// its west side usually being outside the zone.
			adjN := g.at(i, j+1)
			if i == 0 {
				adjN = g.at(i+1, j+1)
			}
			switch {
			case cur.Lon() < west:
				cur = orb.Point{west, clip.AdjustedLatitude(clip.Slope(cur, adjE), west, cur)}
			case cur.Lon() > east:
				continue
			}

			anchor := orb.Point{(cur.Lon() + adjE.Lon()) / 2, (cur.Lat() + adjN.Lat()) / 2}
			if !finite(anchor) || !g.eff.Contains(anchor) || !vp.Contains(anchor) {
				continue
			}
			text, err := squareText(anchor)
			if err != nil {
				slog.Debug("Skipping square label", "zone", g.zone, "anchor", anchor, "error", err)
				continue
			}
			if planar.Distance(proj.Project(anchor), proj.Project(adjE)) < 2*width(text) {
				continue
			}
			labels = append(labels, Label{Text: text, Anchor: anchor, Style: HKLabel})
		}
	}
	return labels
}

func squareText(pt orb.Point) (string, error) {
	s, err := mgrs.Forward(pt, 0)
	if err != nil {
		return "", err
	}
	ref, err := mgrs.Parse(s)
	if err != nil {
		return "", err
	}
	return ref.Square, nil
}

// valueLabels puts easting values along the south edge of the effective
// bound and northing values along its east edge. The outermost easting
// lines are usually clipped short and go unlabeled.
func (g *grid) valueLabels() []Label {
	south, north := g.eff.Min.Lat(), g.eff.Max.Lat()
	west, east := g.eff.Min.Lon(), g.eff.Max.Lon()
	last := len(g.eastings) - 1
	var labels []Label
	if len(g.northings) >= 2 {
		for i := 1; i < last; i++ {
			pt := g.at(i, 1)
			if !finite(pt) || pt.Lon() < west || pt.Lon() > east {
				continue
			}
			labels = append(labels, Label{
				Text:   LabelText(g.eastings[i], g.interval),
				Anchor: orb.Point{pt.Lon(), south},
				Style:  GridLabel,
			})
		}
	}
	if last < 0 {
		return labels
	}
	for j, n := range g.northings {
		pt := g.at(last, j)
		if !finite(pt) || pt.Lat() < south || pt.Lat() > north {
			continue
		}
		labels = append(labels, Label{
			Text:   LabelText(n, g.interval),
			Anchor: orb.Point{east, pt.Lat()},
			Style:  GridLabel,
		})
	}
	return labels
}
