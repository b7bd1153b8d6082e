/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb/geo"
	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/params"
	"github.com/rotblauer/mgrsd/utm"
	"github.com/spf13/cobra"
)

var optStep float64

// accuracyCmd reports round trip errors.
var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Report the round trip error of MGRS conversion over the globe",
	Long: `Converts every point of a --step degree lattice over the UTM grid to MGRS at
--precision, decodes the reference back to the center of its area, and reports
the distance between the two.

At precision 5 a reference is a 1 m square, so the error is at most the half
diagonal of the square plus the grid scale distortion: well under 1.5 m.`,
	Example: `  mgrsd accuracy --step 0.5 --precision 5`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		if optStep <= 0 {
			log.Fatalln("step must be positive")
		}
		errs, failed := roundTripErrors(optStep, optPrecision)
		if len(errs) == 0 {
			log.Fatalln("no points converted")
		}
		mean, _ := stats.Mean(errs)
		median, _ := stats.Median(errs)
		p95, _ := stats.Percentile(errs, 95)
		worst, _ := stats.Max(errs)

		fmt.Printf("points\t%s\n", humanize.Comma(int64(len(errs))))
		fmt.Printf("failed\t%s\n", humanize.Comma(int64(failed)))
		fmt.Printf("mean\t%s\n", humanize.SIWithDigits(mean, 2, "m"))
		fmt.Printf("median\t%s\n", humanize.SIWithDigits(median, 2, "m"))
		fmt.Printf("p95\t%s\n", humanize.SIWithDigits(p95, 2, "m"))
		fmt.Printf("max\t%s\n", humanize.SIWithDigits(worst, 2, "m"))
	},
}

// roundTripErrors returns the distance in meters between each lattice point
// and the center of its reference, and the number of points that failed to
// convert.
func roundTripErrors(step float64, precision int) (stats.Float64Data, int) {
	var errs stats.Float64Data
	failed := 0
	for lat := utm.MinLatitude; lat < utm.MaxLatitude; lat += step {
		for lon := -180.0; lon <= 180; lon += step {
			pt := pointOf(lat, lon)
			ref, err := mgrs.Forward(pt, precision)
			if err != nil {
				slog.Debug("Forward failed", "lat", lat, "lon", lon, "error", err)
				failed++
				continue
			}
			center, err := mgrs.ToPoint(ref)
			if err != nil {
				slog.Debug("Inverse failed", "ref", ref, "error", err)
				failed++
				continue
			}
			errs = append(errs, geo.Distance(pt, center))
		}
	}
	return errs, failed
}

func init() {
	rootCmd.AddCommand(accuracyCmd)

	accuracyCmd.Flags().Float64Var(&optStep, "step", 1, "lattice spacing in degrees")
	accuracyCmd.Flags().IntVar(&optPrecision, "precision", params.DefaultPrecision, "digits per axis, 0 (100 km) to 5 (1 m)")
}
