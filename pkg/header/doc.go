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

// Package header provides the common header carried by every document the
// vodeposit tooling emits.
//
// # Header Structure
//
//	type Header struct {
//	    Kind       Kind              `json:"kind" yaml:"kind"`
//	    APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
// Stamp a validation report:
//
//	var h header.Header
//	h.Init(header.KindValidationReport, "vodeposit.askap.org/v1", version)
//	h.Set(header.MetadataRunID, runID)
//
// Init always records a UTC RFC3339 timestamp and, when non-empty, the tool
// version.
package header
