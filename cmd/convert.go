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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/params"
	"github.com/rotblauer/mgrsd/stream"
	"github.com/spf13/cobra"
)

var optBatchSize int

// convertCmd converts lines from stdin.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert positions and MGRS references from stdin",
	Long: `Reads one position or reference per line from stdin and writes one line per
input to stdout.

A line of two numbers, "LAT LON" or "LAT,LON", is converted to MGRS and written as
LAT, LON and the reference, tab separated. Any other line is decoded as an MGRS
reference and written as with the inverse command.

Blank lines and lines starting with # are skipped. Lines that fail to convert are
logged and dropped.

Examples:

  cut -f1,2 testing/testdata/conversions.tsv | mgrsd convert --precision 3
  echo 18TWL8395907350 | mgrsd convert
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		if err := checkBatchSize(optBatchSize); err != nil {
			log.Fatalln(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			sig := <-common.Interrupted()
			slog.Warn("Received signal", "signal", sig)
			cancel()
		}()

		meter := stream.NewMeter("convert", params.DefaultMeterInterval)
		defer meter.Stop()

		lines, errs := stream.Lines(ctx, os.Stdin)
		converted := stream.Transform(ctx, func(line string) string {
			out, err := convertLine(line, optPrecision)
			meter.Mark(err == nil)
			if err != nil {
				slog.Warn("Failed to convert", "line", line, "error", err)
				return ""
			}
			return out
		}, lines)
		converted = stream.Filter(ctx, func(s string) bool { return s != "" }, converted)

		w := bufio.NewWriter(os.Stdout)
		for batch := range stream.Batch(ctx, optBatchSize, converted) {
			for _, line := range batch {
				_, _ = w.WriteString(line)
				_ = w.WriteByte('\n')
			}
			if err := w.Flush(); err != nil {
				log.Fatalln(err)
			}
		}
		if err := <-errs; err != nil {
			log.Fatalln(err)
		}
	},
}

// convertLine converts a position to MGRS or a reference to its area.
func convertLine(line string, precision int) (string, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 2 {
		lat, latErr := strconv.ParseFloat(fields[0], 64)
		lon, lonErr := strconv.ParseFloat(fields[1], 64)
		if latErr == nil && lonErr == nil {
			return forwardLine(lat, lon, precision)
		}
	}
	return inverseLine(line)
}

func checkBatchSize(n int) error {
	if n < 1 {
		return fmt.Errorf("batch size %d: %w", n, common.ErrOutOfRange)
	}
	return nil
}

func forwardLine(lat, lon float64, precision int) (string, error) {
	ref, err := mgrs.Forward(pointOf(lat, lon), precision)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v\t%v\t%s", lat, lon, ref), nil
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().IntVar(&optPrecision, "precision", params.DefaultPrecision, "digits per axis, 0 (100 km) to 5 (1 m)")
	convertCmd.Flags().IntVar(&optBatchSize, "batch-size", params.DefaultBatchSize, "lines written per flush")
}
