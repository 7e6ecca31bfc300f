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

package workflow

import (
	"encoding/json"
)

// AgentName is the agent label carried by every workflow record.
const AgentName = "Workflow"

// 🏷️ ResultType discriminates success records from error records
type ResultType string

const (
	TypeWorkflow      ResultType = "workflow"
	TypeWorkflowError ResultType = "workflow-error"
)

// 📄 Result is one outcome of a workflow sync.
//
// A success record has Filename set, and Path set only when the file was
// actually copied. An error record carries Error; Filename and Path are
// only set when the failure belongs to a single file.
type Result struct {
	Agent    string
	Type     ResultType
	Filename string
	Path     string
	Error    string
}

// IsError reports whether r is a workflow-error record.
func (r Result) IsError() bool {
	return r.Type == TypeWorkflowError
}

// DryRun reports whether r is a success record for a file that was not copied.
func (r Result) DryRun() bool {
	return r.Type == TypeWorkflow && r.Path == ""
}

func newSuccess(filename, path string) Result {
	return Result{Agent: AgentName, Type: TypeWorkflow, Filename: filename, Path: path}
}

func newError(filename, path string, err error) Result {
	return Result{Agent: AgentName, Type: TypeWorkflowError, Filename: filename, Path: path, Error: err.Error()}
}

type successJSON struct {
	Agent    string     `json:"agent"`
	Type     ResultType `json:"type"`
	Filename string     `json:"filename"`
	Path     string     `json:"path,omitempty"`
}

type errorJSON struct {
	Agent    string     `json:"agent"`
	Type     ResultType `json:"type"`
	Filename *string    `json:"filename"`
	Path     *string    `json:"path"`
	Error    string     `json:"error"`
}

// 📝 MarshalJSON renders the record in its wire shape: success records omit
// path in dry-run mode, error records use null for a missing filename or path.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.IsError() {
		return json.Marshal(successJSON{Agent: r.Agent, Type: r.Type, Filename: r.Filename, Path: r.Path})
	}
	out := errorJSON{Agent: r.Agent, Type: r.Type, Error: r.Error}
	if r.Filename != "" {
		out.Filename = &r.Filename
	}
	if r.Path != "" {
		out.Path = &r.Path
	}
	return json.Marshal(out)
}

// 📊 Summary counts the records of one or more syncs
type Summary struct {
	Synced  int // files copied
	Planned int // files reported by a dry run
	Failed  int // error records
}

// Total returns the number of records summarized.
func (s Summary) Total() int {
	return s.Synced + s.Planned + s.Failed
}

// Summarize tallies results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.IsError():
			s.Failed++
		case r.DryRun():
			s.Planned++
		default:
			s.Synced++
		}
	}
	return s
}

// HasErrors reports whether any record in results is an error record.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.IsError() {
			return true
		}
	}
	return false
}
