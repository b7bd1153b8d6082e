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
	"strconv"

	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/params"
	"github.com/rotblauer/mgrsd/utm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var optPrecision int
var optShowUTM bool

// forwardCmd converts a position to MGRS.
var forwardCmd = &cobra.Command{
	Use:   "forward LAT LON",
	Short: "Convert a latitude and longitude to MGRS",
	Example: `  mgrsd forward 40.7128 -74.006
  mgrsd forward --precision 3 --utm 60 5`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			log.Fatalln(err)
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			log.Fatalln(err)
		}
		c, err := utm.Forward(lat, lon)
		if err != nil {
			log.Fatalln(err)
		}
		ref, err := mgrs.Encode(c, optPrecision)
		if err != nil {
			log.Fatalln(err)
		}
		if optShowUTM {
			fmt.Printf("%s\t%s\n", ref, c)
			return
		}
		fmt.Println(ref)
	},
}

// inverseCmd prints the area of MGRS references.
var inverseCmd = &cobra.Command{
	Use:   "inverse REF...",
	Short: "Convert MGRS references to their center and bounding box",
	Long: `For each reference prints the center latitude and longitude,
the accuracy in meters, and the bounding box west,south,east,north.`,
	Example: `  mgrsd inverse 18TWL8395907350 33XWG`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		for _, ref := range args {
			out, err := inverseLine(ref)
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Println(out)
		}
	},
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// inverseLine formats a reference as ref, lat, lon, accuracy and bbox, tab separated.
func inverseLine(ref string) (string, error) {
	c, err := mgrs.Decode(ref)
	if err != nil {
		return "", err
	}
	box, err := utm.InverseBox(c)
	if err != nil {
		return "", err
	}
	b := box.Bound()
	center := b.Center()
	return fmt.Sprintf("%s\t%s\t%s\t%v\t%s,%s,%s,%s", ref,
		fixed(center.Lat(), 6), fixed(center.Lon(), 6), c.Accuracy,
		fixed(b.Min.Lon(), 6), fixed(b.Min.Lat(), 6), fixed(b.Max.Lon(), 6), fixed(b.Max.Lat(), 6),
	), nil
}

func init() {
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(inverseCmd)

	forwardCmd.Flags().IntVar(&optPrecision, "precision", params.DefaultPrecision, "digits per axis, 0 (100 km) to 5 (1 m)")
	forwardCmd.Flags().BoolVar(&optShowUTM, "utm", false, "also print the UTM coordinate")
}
