// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package defaults

import "time"

// Import timeouts for whole-file operations. The validation core has no
// deadline of its own; callers wrap each file in these.
const (
	// ImportTimeout is the wall-clock budget for importing one catalogue file.
	ImportTimeout = 10 * time.Minute

	// ValidateTimeout is the wall-clock budget for a whole validate command.
	ValidateTimeout = 30 * time.Minute

	// DecodeTimeout bounds reading and decoding a single VOTABLE file.
	// Should be less than ImportTimeout to leave time for validation.
	DecodeTimeout = 2 * time.Minute
)

// Concurrency limits.
const (
	// MaxConcurrentFiles caps how many files validate checks in parallel.
	MaxConcurrentFiles = 4
)

// Output defaults.
const (
	// MaxReportedErrors caps the rejection messages logged per file.
	MaxReportedErrors = 100
)
