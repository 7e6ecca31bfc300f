// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/idesync/cmd/idesync/commands"
	"github.com/walteh/idesync/cmd/idesync/opts"
	"github.com/walteh/idesync/pkg/config"
	"github.com/walteh/idesync/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewRootCmd creates the idesync command tree
func NewRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "idesync",
		Short: "Sync IDE agent configuration from project templates",
		Long: `idesync copies the workflow templates shipped with a project into the
directory its IDE agent reads them from.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.Logger == nil {
				return nil
			}
			return o.Logger.Close()
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewSyncCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", "", "also write JSON logs to this file")
}

// setup loads the config and attaches the logger to the command context
func setup(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()

	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	var logOpts []log.Option
	if o.LogOutput != nil {
		logOpts = append(logOpts, log.WithOutput(o.LogOutput))
	}

	// config loading logs through a bootstrap logger; the log file may come from the config
	bootstrap := log.New(cmd.ErrOrStderr(), level, logOpts...)
	cfg, err := config.LoadOrDefault(bootstrap.Zerolog().WithContext(ctx), o.ConfigFile)
	if err != nil {
		bootstrap.Errorf("loading config: %v", err)
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	logFile := o.LogFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	logOpts = append(logOpts, log.WithLogFile(logFile))

	o.Logger = log.New(cmd.OutOrStdout(), level, logOpts...)
	cmd.SetContext(log.NewContext(ctx, o.Logger))
	return nil
}
