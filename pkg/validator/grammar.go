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
	stderrors "errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// ArraysizePattern is the accepted grammar of arraysize and maxarraysize values.
	ArraysizePattern = `(\d+)?(\*)?`

	// PrecisionPattern is the accepted grammar of precision and maxprecision values.
	// A missing prefix or F selects decimal places, E selects significant digits.
	PrecisionPattern = `F?(\d+)|E(\d+)`
)

var (
	arraysizeRegexp = regexp.MustCompile(`^(?:` + ArraysizePattern + `)$`)
	precisionRegexp = regexp.MustCompile(`^(?:` + PrecisionPattern + `)$`)

	// ErrIncompatiblePrecisionKind is returned when a decimal-places precision is
	// compared with a significant-digits one.
	ErrIncompatiblePrecisionKind = stderrors.New("precisions are not comparable: one uses significant digits and the other decimal places")
)

// GrammarError reports a value that does not match its grammar.
type GrammarError struct {
	Value   string
	Pattern string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("Expected value '%s' to match '%s'", e.Value, e.Pattern)
}

// Arraysize is a parsed arraysize such as "10", "10*" or "*".
type Arraysize struct {
	raw      string
	max      *big.Int
	variable bool
}

// ParseArraysize parses s against ArraysizePattern. The empty string is valid
// and yields an arraysize with neither a maximum nor variability.
func ParseArraysize(s string) (Arraysize, error) {
	m := arraysizeRegexp.FindStringSubmatch(s)
	if m == nil {
		return Arraysize{}, &GrammarError{Value: s, Pattern: ArraysizePattern}
	}
	a := Arraysize{raw: s, variable: m[2] != ""}
	if m[1] != "" {
		a.max, _ = new(big.Int).SetString(m[1], 10)
	}
	return a, nil
}

// String returns the arraysize exactly as it was written.
func (a Arraysize) String() string {
	return a.raw
}

// HasMaximum reports whether a digit bound was declared.
func (a Arraysize) HasMaximum() bool {
	return a.max != nil
}

// Maximum returns the declared bound, or nil.
func (a Arraysize) Maximum() *big.Int {
	if a.max == nil {
		return nil
	}
	return new(big.Int).Set(a.max)
}

// IsVariable reports whether the arraysize carries the '*' marker.
func (a Arraysize) IsVariable() bool {
	return a.variable
}

// ExceedsMaximum reports whether a definitely exceeds limit. An unbounded
// value on either side never exceeds; the '*' marker does not affect the comparison.
func (a Arraysize) ExceedsMaximum(limit Arraysize) bool {
	if !a.HasMaximum() || !limit.HasMaximum() {
		return false
	}
	return a.max.Cmp(limit.max) > 0
}

// ExceededBy reports whether value has more characters than the bound.
func (a Arraysize) ExceededBy(value string) bool {
	if !a.HasMaximum() {
		return false
	}
	return a.max.Cmp(big.NewInt(int64(utf8.RuneCountInString(value)))) < 0
}

// PrecisionKind distinguishes the two precision flavours.
type PrecisionKind int

const (
	// DecimalPlaces counts digits after the decimal point.
	DecimalPlaces PrecisionKind = iota
	// SignificantDigits counts significant digits.
	SignificantDigits
)

func (k PrecisionKind) String() string {
	if k == SignificantDigits {
		return "significant digits"
	}
	return "decimal places"
}

// Precision is a parsed precision such as "3", "F3" or "E5".
type Precision struct {
	raw    string
	kind   PrecisionKind
	degree *big.Int
}

// ParsePrecision parses s against PrecisionPattern. Empty input is rejected.
func ParsePrecision(s string) (Precision, error) {
	m := precisionRegexp.FindStringSubmatch(s)
	if m == nil {
		return Precision{}, &GrammarError{Value: s, Pattern: PrecisionPattern}
	}
	p := Precision{raw: s, kind: DecimalPlaces}
	digits := m[1]
	if m[2] != "" {
		p.kind = SignificantDigits
		digits = m[2]
	}
	p.degree, _ = new(big.Int).SetString(digits, 10)
	return p, nil
}

// String returns the precision exactly as it was written.
func (p Precision) String() string {
	return p.raw
}

// Kind returns the precision flavour.
func (p Precision) Kind() PrecisionKind {
	return p.kind
}

// Degree returns the number of decimal places or significant digits.
func (p Precision) Degree() *big.Int {
	return new(big.Int).Set(p.degree)
}

// Description renders the precision for messages, e.g. "3 decimal places".
func (p Precision) Description() string {
	return p.degree.String() + " " + p.kind.String()
}

// ComparableTo reports whether both precisions share a kind.
func (p Precision) ComparableTo(other Precision) bool {
	return p.kind == other.kind
}

// IsMorePreciseThan compares degrees of two precisions of the same kind.
// It returns ErrIncompatiblePrecisionKind when the kinds differ.
func (p Precision) IsMorePreciseThan(other Precision) (bool, error) {
	if !p.ComparableTo(other) {
		return false, ErrIncompatiblePrecisionKind
	}
	return p.degree.Cmp(other.degree) > 0, nil
}

// ExceededBy reports whether the numeric literal value carries more precision
// than p allows. Literals whose digits cannot be counted (NaN, Inf, hex) never exceed.
func (p Precision) ExceededBy(value string) bool {
	var n int
	var ok bool
	if p.kind == SignificantDigits {
		n, ok = significantDigits(value)
	} else {
		n, ok = decimalPlaces(value)
	}
	if !ok {
		return false
	}
	return big.NewInt(int64(n)).Cmp(p.degree) > 0
}

// mantissa strips the sign and exponent from a decimal literal.
func mantissa(value string) (string, bool) {
	s := strings.TrimLeft(value, "+-")
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return "", false
		}
	}
	return s, true
}

func decimalPlaces(value string) (int, bool) {
	s, ok := mantissa(value)
	if !ok {
		return 0, false
	}
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0, true
	}
	return len(s) - i - 1, true
}

// significantDigits counts digits the way an arbitrary precision decimal
// does: leading zeros are dropped, trailing zeros are kept, zero counts as one.
func significantDigits(value string) (int, bool) {
	s, ok := mantissa(value)
	if !ok {
		return 0, false
	}
	digits := strings.TrimLeft(strings.ReplaceAll(s, ".", ""), "0")
	if digits == "" {
		return 1, true
	}
	return len(digits), true
}
