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

// Package validator checks VOTABLE tables against per-catalogue constraints
// and converts their cells into typed Go values.
//
// # Overview
//
// A Validator walks the first TABLE of a document in order: PARAMs, FIELDs,
// then rows and their cells. Declared constraints are matched to the
// elements actually present, attributes are checked against them, and each
// cell is parsed according to its FIELD datatype and bounds.
//
// # Constraints
//
// A Constraint matches an element by name, id and ucd (every declared key
// must match) or, when none is declared, by datatype. It may require a ref,
// datatype or unit, and may bound arraysize, width and precision:
//
//	c := validator.Constraint{Name: "ra_deg_cont", Datatype: "double", Unit: "deg", MaxPrecision: "F6"}
//	set, err := validator.NewConstraintSet(nil, []validator.Constraint{c})
//
// NewConstraintSet rejects malformed constraints, for example a char
// constraint without maxarraysize.
//
// # Usage
//
//	v := validator.New(set,
//	    validator.WithFailFast(false),
//	    validator.WithRowHandler(func(r validator.TypedRow) error {
//	        ra, _ := r.Get("ra_deg_cont")
//	        fmt.Println(ra.(float64))
//	        return nil
//	    }),
//	)
//	result, err := v.Validate(doc)
//
// # Error Handling
//
// Every problem is a *ValidationError whose message names its position:
//
//	Error in TABLE : Missing FIELD matching name: 'flux_peak', datatype: 'double'
//	Error in PARAM 'imageFile' : Value '...' is wider than 50 chars
//	Error in 6th TD (FIELD 'flux_peak') of 2nd TR : Value 'x' is not a 'double'
//
// In fail-fast mode Validate returns the first one as its error. In
// collect-all mode Validate returns a ValidationResult listing all of them;
// rows with errors are withheld from the row handler while the rest of the
// table is still checked.
package validator
