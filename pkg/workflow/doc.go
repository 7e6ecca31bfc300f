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
Package workflow syncs agent workflow templates into a project's IDE
configuration.

	+-------------------------------+          +--------------------+
	| <project>/.aios-core/product/ |  *.md    | <project>/.agent/  |
	|   templates/ide-rules/        | -------> |   workflows/       |
	|   antigravity/workflows/      |          |                    |
	+-------------------------------+          +--------------------+

🔄 Flow:
1. List the template directory (the only invocation-level failure)
2. Keep the file names matching the include glob
3. Create the target directory unless running dry
4. Copy each file, appending one Result per file

Results are appended to a caller-owned slice. A Syncer never returns an
error; callers look for workflow-error records instead.

	var results []workflow.Result
	workflow.NewSyncer(fsys.NewOS()).Sync(ctx, root, workflow.Options{DryRun: true}, &results)
*/
package workflow
