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
	"context"
	"log"
	"log/slog"
	"sync"

	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/daemon/webd"
	"github.com/rotblauer/mgrsd/metrics"
	"github.com/rotblauer/mgrsd/metrics/influxdb"
	"github.com/rotblauer/mgrsd/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var optHTTPAddr string
var optHTTPNetwork string

// webdCmd represents the serve command
var webdCmd = &cobra.Command{
	Use:   "webd",
	Short: "Start the webserver",
	Long: `Serves MGRS conversions, zone lookups and grids over HTTP, and grids for
moving viewports over the /socket websocket.

Metrics are posted to InfluxDB when metrics.url (or MGRSD_METRICS_URL) is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		slog.Info("webd.Run")

		grid, err := gridConfig()
		if err != nil {
			log.Fatalln(err)
		}
		config := params.DefaultWebDaemonConfig()
		config.ListenerConfig = params.ListenerConfig{
			Network: optHTTPNetwork,
			Address: optHTTPAddr,
		}
		config.Grid = grid
		if viper.IsSet("webd.cachesize") {
			config.GridCacheSize = viper.GetInt("webd.cachesize")
		}
		if viper.IsSet("webd.sessionttl") {
			config.SessionTTL = viper.GetDuration("webd.sessionttl")
		}
		server, err := webd.NewWebDaemon(config)
		if err != nil {
			log.Fatalln(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			sig := <-common.Interrupted()
			slog.Warn("Received signal", "signal", sig)
			cancel()
		}()

		wg := sync.WaitGroup{}
		if mc := metricsConfig(); mc.Enabled() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				slog.Info("Exporting metrics", "url", mc.URL, "bucket", mc.Bucket)
				if err := influxdb.ExportRegistry(ctx, mc, metrics.Registry); err != nil {
					slog.Error("Metrics export failed", "error", err)
				}
			}()
		}

		if err := server.Run(ctx); err != nil {
			log.Fatalln(err)
		}
		cancel()
		wg.Wait()
	},
}

// metricsConfig is the metrics config from the environment, overridden by the
// metrics key of the config file.
func metricsConfig() *params.MetricsConfig {
	mc := params.DefaultMetricsConfig()
	for key, v := range map[string]*string{
		"metrics.url":    &mc.URL,
		"metrics.token":  &mc.Token,
		"metrics.org":    &mc.Org,
		"metrics.bucket": &mc.Bucket,
	} {
		if viper.IsSet(key) {
			*v = viper.GetString(key)
		}
	}
	if viper.IsSet("metrics.interval") {
		mc.Interval = viper.GetDuration("metrics.interval")
	}
	return mc
}

func init() {
	rootCmd.AddCommand(webdCmd)

	defaults := params.DefaultWebDaemonConfig()

	pFlags := webdCmd.PersistentFlags()
	pFlags.AddFlagSet(&pflag.FlagSet{})
	pFlags.StringVar(&optHTTPAddr, "address", defaults.Address, "HTTP address to listen on")
	pFlags.StringVar(&optHTTPNetwork, "network", defaults.Network, "network to listen on: tcp, tcp4, tcp6 or unix")
}
