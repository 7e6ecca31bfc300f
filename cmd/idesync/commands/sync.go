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

package commands

import (
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/idesync/cmd/idesync/opts"
	"github.com/walteh/idesync/pkg/log"
	"github.com/walteh/idesync/pkg/workflow"
	"gitlab.com/tozd/go/errors"
)

// NewSyncCmd creates the sync command
func NewSyncCmd(o *opts.RootOpts) *cobra.Command {
	var (
		dryRun  bool
		verbose bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "sync [project]",
		Short: "Copy workflow templates into the agent workflow directory",
		Long: `Sync copies every workflow template of a project into its agent workflow directory.
It will:
1. List the template directory
2. Keep the files matching the include glob (*.md by default)
3. Copy them, overwriting existing copies
4. Report one result per file

The project defaults to the configured project or the working directory.
With --dry-run nothing is written; the results show what would be copied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := o.Config

			project := cfg.Project
			if len(args) == 1 {
				project = args[0]
			}
			if project == "" {
				project = "."
			}
			root, err := filepath.Abs(project)
			if err != nil {
				return errors.Errorf("resolving project path: %w", err)
			}

			if !cmd.Flags().Changed("dry-run") {
				dryRun = cfg.DryRun
			}
			if !cmd.Flags().Changed("verbose") {
				verbose = cfg.Verbose
			}
			if !cmd.Flags().Changed("json") {
				jsonOut = cfg.JSON
			}

			ctx = zerolog.Ctx(ctx).With().Str("command", "sync").Logger().WithContext(ctx)

			syncer := workflow.NewSyncerWithLayout(o.FS, cfg.WorkflowLayout())

			var results []workflow.Result
			syncer.Sync(ctx, root, workflow.Options{DryRun: dryRun, Verbose: verbose}, &results)

			summary := workflow.Summarize(results)
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if results == nil {
					results = []workflow.Result{}
				}
				if err := enc.Encode(results); err != nil {
					return errors.Errorf("encoding results: %w", err)
				}
			} else {
				logger := log.FromContext(ctx)
				logger.StartProject(ctx, log.ProjectOperation{Root: root, DryRun: dryRun})
				for _, r := range results {
					logger.LogResult(ctx, r)
				}
				summary = logger.EndProject(ctx)
				logger.LogNewline()

				switch {
				case summary.Failed > 0:
					logger.Warning(log.FormatSummary(summary))
				case summary.Total() == 0:
					logger.Info("no workflow templates found in " + syncer.SourceDir(root))
				default:
					logger.Success(log.FormatSummary(summary))
				}
			}

			if workflow.HasErrors(results) {
				return errors.Errorf("%d workflow sync error(s)", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be copied without writing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each step of the sync")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	return cmd
}
