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

// Package defaults provides centralized configuration constants for vodeposit.
//
// This package defines timeout values and concurrency limits used across the
// codebase.
//
// # Timeout Categories
//
//   - Import timeouts: per-file and per-command wall-clock budgets
//   - Concurrency limits: parallel file validation
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ImportTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// The validation engine itself never blocks and takes no context. Deadlines
// are enforced by the importer around decoding and between files.
package defaults
