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
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/graticule"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/lattice"
	"github.com/spf13/cobra"
)

var optZoom int

// gridCmd draws a graticule.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Draw the MGRS grid of a viewport as GeoJSON",
	Long: `Writes the zone dividers, grid lines and labels of the viewport --bbox at map
zoom --zoom to stdout as a GeoJSON FeatureCollection.

The grid interval follows the zoom thresholds of the grid config:

  grid:
    thresholds:
      hundredkminzoom: 6
      tenkminzoom: 9
      onekminzoom: 12
      hundredmminzoom: 15

A viewport whose grid would need more than grid.maxrenderpoints lattice points
(default 4194304) is refused.
`,
	Example: `  mgrsd grid --bbox -74.1,40.6,-73.9,40.8 --zoom 12 > nyc.geojson`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		cfg, err := gridConfig()
		if err != nil {
			log.Fatalln(err)
		}
		b, err := lattice.ParseBound(optBBox)
		if err != nil {
			log.Fatalln(err)
		}
		zoom := common.SlippyZoomLevelT(optZoom)
		if !zoom.Valid() {
			log.Fatalf("zoom %d: %v", optZoom, common.ErrOutOfRange)
		}
		res, err := graticule.Render(lattice.Viewport{Bound: b, Zoom: zoom}, cfg, graticule.WithIndex(gzd.NewIndex()))
		if err != nil {
			log.Fatalln(err)
		}
		for _, s := range res.Skipped {
			slog.Warn("Zone skipped", "skip", s)
		}
		if len(res.Gaps) > 0 {
			slog.Info("Zones in view without a grid", "gaps", res.Gaps)
		}
		if err := json.NewEncoder(os.Stdout).Encode(res.FeatureCollection()); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)

	gridCmd.Flags().StringVar(&optBBox, "bbox", "", "west,south,east,north")
	gridCmd.Flags().IntVar(&optZoom, "zoom", 12, "map zoom level")
	_ = gridCmd.MarkFlagRequired("bbox")
}
