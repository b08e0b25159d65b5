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
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/askap/vodeposit/pkg/votable"
)

// Datatype is one of the VOTABLE primitive datatypes the validator supports.
type Datatype int

const (
	Char Datatype = iota + 1
	Boolean
	Bit
	UnsignedByte
	Short
	Int
	Long
	Float
	Double
)

var datatypeTags = map[Datatype]string{
	Char:         "char",
	Boolean:      "boolean",
	Bit:          "bit",
	UnsignedByte: "unsignedByte",
	Short:        "short",
	Int:          "int",
	Long:         "long",
	Float:        "float",
	Double:       "double",
}

// Datatypes lists every supported datatype in declaration order.
func Datatypes() []Datatype {
	return []Datatype{Char, Boolean, Bit, UnsignedByte, Short, Int, Long, Float, Double}
}

// ParseDatatype resolves a VOTABLE datatype attribute, ignoring case.
func ParseDatatype(tag string) (Datatype, error) {
	for _, d := range Datatypes() {
		if strings.EqualFold(tag, datatypeTags[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("Datatype '%s' is not supported", tag)
}

// String returns the VOTABLE attribute spelling, e.g. "unsignedByte".
func (d Datatype) String() string {
	if tag, ok := datatypeTags[d]; ok {
		return tag
	}
	return fmt.Sprintf("Datatype(%d)", int(d))
}

// Name returns the upper case name used in attribute messages, e.g. "UNSIGNEDBYTE".
func (d Datatype) Name() string {
	return strings.ToUpper(d.String())
}

func (d Datatype) lower() string {
	return strings.ToLower(d.String())
}

func (d Datatype) notA(value string) error {
	return fmt.Errorf("Value '%s' is not a '%s'", value, d.lower())
}

var (
	booleanRegexp = regexp.MustCompile(`^(?:0|1|t|f|true|false| |\?|\x00)$`)
	bitRegexp     = regexp.MustCompile(`^[01 ]*$`)
)

// ValidateFieldAttributes checks the declared attributes of a FIELD or PARAM:
// first against its matching constraint (which may be nil), then the
// arraysize, width and precision grammars.
func (d Datatype) ValidateFieldAttributes(field votable.Descriptor, c *Constraint) error {
	if c != nil {
		if err := c.ValidateField(field); err != nil {
			return err
		}
	}
	if err := d.validateArraysizeAttribute(field); err != nil {
		return err
	}
	if field.Width != "" {
		w, ok := new(big.Int).SetString(field.Width, 10)
		if !ok {
			return fmt.Errorf("Attribute 'width' ('%s') is not an integer", field.Width)
		}
		if w.Sign() < 0 {
			return fmt.Errorf("Attribute 'width' attribute cannot be negative for datatype '%s'", d.Name())
		}
	}
	if field.Precision != "" {
		if _, err := ParsePrecision(field.Precision); err != nil {
			return fmt.Errorf("Attribute 'precision' does not match '%s'", PrecisionPattern)
		}
	}
	return nil
}

func (d Datatype) validateArraysizeAttribute(field votable.Descriptor) error {
	if field.Arraysize == "" {
		return nil
	}
	if d != Char {
		return fmt.Errorf("Attribute 'arraysize' ('%s') for datatype '%s' is not supported", field.Arraysize, d.Name())
	}
	if _, err := ParseArraysize(field.Arraysize); err != nil {
		return fmt.Errorf("Attribute 'arraysize' ('%s') does not match '%s'", field.Arraysize, ArraysizePattern)
	}
	return nil
}

// ValidateFieldValue checks value against the field's datatype and limits and
// returns it converted to its Go type: string (CHAR, BIT), bool or nil
// (BOOLEAN), uint8, int16, int32, int64, float32 or float64.
func (d Datatype) ValidateFieldValue(field votable.Descriptor, c *Constraint, value string) (any, error) {
	switch d {
	case Char:
		if err := checkArraysize(field, c, value); err != nil {
			return nil, err
		}
		return value, nil

	case Boolean:
		if !booleanRegexp.MatchString(strings.ToLower(value)) {
			return nil, d.notA(value)
		}
		return convertBoolean(value), nil

	case Bit:
		if !bitRegexp.MatchString(value) {
			return nil, d.notA(value)
		}
		return strings.ReplaceAll(value, " ", ""), nil

	case UnsignedByte:
		n, err := parseUnsigned(value)
		if err != nil {
			return nil, d.notA(value)
		}
		if err := checkWidth(field, c, value); err != nil {
			return nil, err
		}
		if n > 255 {
			return nil, d.notA(value)
		}
		return uint8(n), nil

	case Short, Int, Long:
		n, err := strconv.ParseInt(value, 10, d.bitSize())
		if err != nil {
			return nil, d.notA(value)
		}
		if err := checkWidth(field, c, value); err != nil {
			return nil, err
		}
		switch d {
		case Short:
			return int16(n), nil
		case Int:
			return int32(n), nil
		default:
			return n, nil
		}

	case Float, Double:
		f, err := parseReal(value, d.bitSize())
		if err != nil {
			return nil, d.notA(value)
		}
		if err := checkWidth(field, c, value); err != nil {
			return nil, err
		}
		if err := checkPrecision(field, c, value); err != nil {
			return nil, err
		}
		if d == Float {
			return float32(f), nil
		}
		return f, nil
	}
	return nil, fmt.Errorf("Datatype '%s' is not supported", d)
}

func (d Datatype) bitSize() int {
	switch d {
	case Short:
		return 16
	case Int, Float:
		return 32
	default:
		return 64
	}
}

// parseReal accepts values beyond the representable range, which parse to
// an infinity, and values that lose precision in rounding.
func parseReal(value string, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(value, bitSize)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

// parseUnsigned reads a decimal or 0x-prefixed hexadecimal unsigned integer.
func parseUnsigned(value string) (uint64, error) {
	base := 10
	digits := value
	if strings.HasPrefix(value, "0x") {
		base = 16
		digits = value[2:]
	}
	digits = strings.TrimPrefix(digits, "+")
	return strconv.ParseUint(digits, base, 32)
}

func convertBoolean(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	switch strings.ToLower(value)[0] {
	case '1', 't':
		return true
	case '0', 'f':
		return false
	}
	return nil
}

// checkArraysize uses the field's own arraysize when it is bounded, otherwise
// the constraint's maxarraysize. A malformed arraysize is a GrammarError.
func checkArraysize(field votable.Descriptor, c *Constraint, value string) error {
	var limit Arraysize
	usable := false
	if field.Arraysize != "" {
		a, err := ParseArraysize(field.Arraysize)
		if err != nil {
			return err
		}
		limit = a
		usable = a.HasMaximum() || !a.IsVariable()
	}
	prefix := ""
	if !usable && c != nil && c.MaxArraysize != "" {
		a, err := ParseArraysize(c.MaxArraysize)
		if err != nil {
			return err
		}
		limit = a
		usable = true
		prefix = "maximum "
	}
	if usable && limit.ExceededBy(value) {
		return fmt.Errorf("Value '%s' is wider than %s%s chars", value, prefix, limit)
	}
	return nil
}

// checkWidth compares the literal length with the field width or, failing
// that, the constraint's maxwidth.
func checkWidth(field votable.Descriptor, c *Constraint, value string) error {
	var width *big.Int
	prefix := ""
	if field.Width != "" {
		width, _ = new(big.Int).SetString(field.Width, 10)
	}
	if width == nil && c != nil && c.MaxWidth != "" {
		width, _ = new(big.Int).SetString(c.MaxWidth, 10)
		prefix = "maximum "
	}
	if width == nil {
		return nil
	}
	if big.NewInt(int64(utf8.RuneCountInString(value))).Cmp(width) > 0 {
		return fmt.Errorf("Value '%s' is wider than %s%s chars", value, prefix, width.String())
	}
	return nil
}

func checkPrecision(field votable.Descriptor, c *Constraint, value string) error {
	var precision Precision
	found := false
	prefix := ""
	if field.Precision != "" {
		if p, err := ParsePrecision(field.Precision); err == nil {
			precision, found = p, true
		}
	} else if c != nil && c.MaxPrecision != "" {
		if p, err := ParsePrecision(c.MaxPrecision); err == nil {
			precision, found = p, true
			prefix = "maximum "
		}
	}
	if found && precision.ExceededBy(value) {
		return fmt.Errorf("Value '%s' is more precise than %s%s", value, prefix, precision.Description())
	}
	return nil
}
