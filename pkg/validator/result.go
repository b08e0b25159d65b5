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

package validator

import (
	"time"

	"github.com/askap/vodeposit/pkg/header"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates the document has no errors.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail indicates one or more errors were found.
	ValidationStatusFail ValidationStatus = "fail"
)

// ValidationResult represents the complete validation outcome of one document.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Source is the path of the validated document, set by the caller.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// CatalogueType names the constraint registry used, set by the caller.
	CatalogueType string `json:"catalogueType,omitempty" yaml:"catalogueType,omitempty"`

	// Mode is the error policy the traversal ran with.
	Mode Mode `json:"mode" yaml:"mode"`

	// Summary contains aggregate validation statistics.
	Summary ValidationSummary `json:"summary" yaml:"summary"`

	// Errors lists every message in report order.
	Errors []string `json:"errors" yaml:"errors"`

	errs []*ValidationError
}

// ValidationSummary contains aggregate statistics about the validation.
type ValidationSummary struct {
	// Params is the number of PARAMs in the table.
	Params int `json:"params" yaml:"params"`

	// Fields is the number of FIELDs in the table.
	Fields int `json:"fields" yaml:"fields"`

	// Rows is the number of rows visited.
	Rows int `json:"rows" yaml:"rows"`

	// RowsDelivered is the number of rows handed to the row handler.
	RowsDelivered int `json:"rowsDelivered" yaml:"rowsDelivered"`

	// RowsRejected is the number of rows withheld because of errors.
	RowsRejected int `json:"rowsRejected" yaml:"rowsRejected"`

	// Errors is the number of reported errors.
	Errors int `json:"errors" yaml:"errors"`

	// Status is the overall validation status.
	Status ValidationStatus `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewValidationResult creates a new ValidationResult with initialized slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors: make([]string, 0),
	}
}

// ValidationErrors returns the structured errors behind Errors.
func (r *ValidationResult) ValidationErrors() []*ValidationError {
	return append([]*ValidationError(nil), r.errs...)
}

// Passed reports whether the document had no errors.
func (r *ValidationResult) Passed() bool {
	return r.Summary.Status == ValidationStatusPass
}

func (r *ValidationResult) setErrors(errs []*ValidationError) {
	r.errs = errs
	r.Errors = make([]string, len(errs))
	for i, e := range errs {
		r.Errors[i] = e.Error()
	}
	r.Summary.Errors = len(errs)
	if len(errs) > 0 {
		r.Summary.Status = ValidationStatusFail
	} else {
		r.Summary.Status = ValidationStatusPass
	}
}
