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

// Package serializer writes validation reports and catalogues as JSON, YAML
// or tables, and reads constraint files back from JSON or YAML.
//
// # Writing
//
// NewFileWriterOrStdout picks a file destination and falls back to stdout
// when the path is empty or cannot be created:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "report.yaml")
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// The table format flattens nested values into FIELD/VALUE pairs. Values
// implementing Tabular render as a column table instead, which is how
// catalogue entries are printed.
//
// # Reading
//
// FromFile detects the format from the extension and decodes in one call.
// WithStrictFields rejects keys the target type does not declare:
//
//	file, err := serializer.FromFile[constraintFile]("island.yaml", serializer.WithStrictFields())
//
// Extension mapping:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table (write only)
//   - anything else → JSON
//
// A missing input file is reported with code NOT_FOUND from pkg/errors.
package serializer
