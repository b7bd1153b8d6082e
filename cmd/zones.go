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
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/lattice"
	"github.com/rotblauer/mgrsd/visible"
	"github.com/spf13/cobra"
)

var optBBox string

func pointOf(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// gzdCmd prints zone boundaries.
var gzdCmd = &cobra.Command{
	Use:     "gzd LABEL...",
	Short:   "Print grid zone boundaries as a GeoJSON FeatureCollection",
	Example: `  mgrsd gzd 31V 32V 33X`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		fc, err := zoneFeatures(args)
		if err != nil {
			log.Fatalln(err)
		}
		if err := json.NewEncoder(os.Stdout).Encode(fc); err != nil {
			log.Fatalln(err)
		}
	},
}

func zoneFeatures(labels []string) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, label := range labels {
		c, err := gzd.Boundary(label)
		if err != nil {
			return nil, err
		}
		f := geojson.NewFeature(orb.Polygon{c.Ring()})
		f.Properties["gzd"] = strings.ToUpper(strings.TrimSpace(label))
		fc.Append(f)
	}
	return fc, nil
}

// visibleCmd lists the zones in a bounding box.
var visibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "List the grid zones a bounding box shows",
	Long: `Lists the zones found from the corners of --bbox, one per line.
Zones the box overlaps that corner sampling missed are listed after them,
marked as gaps.`,
	Example: `  mgrsd visible --bbox 1,62,5,66`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		b, err := lattice.ParseBound(optBBox)
		if err != nil {
			log.Fatalln(err)
		}
		corners := visible.CornersOf(b)
		zones, err := visible.Resolve(corners)
		if err != nil {
			log.Fatalln(err)
		}
		for _, z := range zones {
			fmt.Println(z)
		}
		for _, z := range visible.Gaps(corners, zones, gzd.NewIndex()) {
			fmt.Printf("%s\tgap\n", z)
		}
	},
}

func init() {
	rootCmd.AddCommand(gzdCmd)
	rootCmd.AddCommand(visibleCmd)

	visibleCmd.Flags().StringVar(&optBBox, "bbox", "", "west,south,east,north")
	_ = visibleCmd.MarkFlagRequired("bbox")
}
