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

/*
Package config manages configuration parsing and validation for idesync.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Supplies defaults for the sync command (project, dry run, verbosity)
- Overrides the workflow layout (source, target, include glob)

🔄 Flow:
1. Picks a parser by file extension
2. Parses, rejecting unknown fields
3. Validates and normalizes layout paths

A missing default config file is not an error; LoadOrDefault returns an
empty Config and the default workflow layout applies.

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, ".idesync.yaml")
	if err != nil {
		return err
	}
	syncer := workflow.NewSyncerWithLayout(fsys.NewOS(), cfg.WorkflowLayout())
*/
package config
