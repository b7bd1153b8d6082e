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
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/params"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mgrsd",
	Short: "MGRS conversions and map grids",
	Long: `mgrsd converts between latitude/longitude and MGRS references,
resolves grid zones, and draws the MGRS graticule of a map viewport.

Run it as a one-shot tool, or as a daemon (webd) serving the same over HTTP
and a websocket.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+params.ConfigName+".yaml)")
	pFlags.String("verbosity", "info", "log level: debug, info, warn, error, or 0-3")
	_ = viper.BindPFlag("verbosity", pFlags.Lookup("verbosity"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(params.ConfigName)
	}

	viper.SetEnvPrefix(params.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaultSlog installs a text logger on stderr at the configured verbosity.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	level, err := common.ParseSlogLevel(viper.GetString("verbosity"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("Logging", "command", cmd.Name(), "args", args, "level", level)
}

// gridConfig is the default grid config, overridden by the grid key of the
// config file.
func gridConfig() (*params.GridConfig, error) {
	cfg := params.DefaultGridConfig()
	if viper.IsSet("grid") {
		if err := viper.UnmarshalKey("grid", cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Thresholds.Validate()
}
