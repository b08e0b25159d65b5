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
	"fmt"
	"strconv"

	"github.com/askap/vodeposit/pkg/errors"
)

// ErrorKind classifies a validation error.
type ErrorKind string

const (
	// KindStructural covers missing or malformed declarations, attribute
	// mismatches and wrong cell counts.
	KindStructural ErrorKind = "structural"
	// KindValue covers cell and PARAM values that fail their datatype checks.
	KindValue ErrorKind = "value"
)

// Element names the part of a document an error is attached to.
type Element string

const (
	ElementVOTable Element = "VOTABLE"
	ElementTable   Element = "TABLE"
	ElementParam   Element = "PARAM"
	ElementField   Element = "FIELD"
	ElementRow     Element = "TR"
	ElementCell    Element = "TD"
)

// Position locates an error. Row and Cell are 1-based; Name is the PARAM or
// FIELD name (for TD errors, the name of the cell's FIELD).
type Position struct {
	Element Element `json:"element" yaml:"element"`
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Row     int     `json:"row,omitempty" yaml:"row,omitempty"`
	Cell    int     `json:"cell,omitempty" yaml:"cell,omitempty"`
}

// String renders the position the way messages address it, for example
// "PARAM 'imageFile'" or "6th TD (FIELD 'flux_peak') of 2nd TR".
func (p Position) String() string {
	switch p.Element {
	case ElementParam, ElementField:
		return fmt.Sprintf("%s '%s'", p.Element, p.Name)
	case ElementRow:
		return Ordinal(p.Row) + " TR"
	case ElementCell:
		return fmt.Sprintf("%s TD (FIELD '%s') of %s TR", Ordinal(p.Cell), p.Name, Ordinal(p.Row))
	case "":
		return string(ElementVOTable)
	default:
		return string(p.Element)
	}
}

// ValidationError is a single positioned structural or value error.
type ValidationError struct {
	Kind     ErrorKind `json:"kind" yaml:"kind"`
	Position Position  `json:"position" yaml:"position"`
	Message  string    `json:"message" yaml:"message"`
}

// Error renders "Error in <position> : <message>".
func (e *ValidationError) Error() string {
	return "Error in " + e.Position.String() + " : " + e.Message
}

// Code maps the error kind onto the structured error codes.
func (e *ValidationError) Code() errors.ErrorCode {
	if e.Kind == KindValue {
		return errors.ErrCodeInvalidValue
	}
	return errors.ErrCodeMalformedTable
}

// Structural creates a structural error at pos.
func Structural(pos Position, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: KindStructural, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// Value creates a value error at pos.
func Value(pos Position, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: KindValue, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// Ordinal renders n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
