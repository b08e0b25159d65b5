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
	"strings"

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/votable"
)

// Constraint declares what a FIELD or PARAM of a catalogue must look like.
// Name, ID and UCD identify the element; when none of them is set the
// datatype is used instead. The remaining keys are expectations checked once
// the constraint applies. Blank values mean "not declared".
type Constraint struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	UCD          string `json:"ucd,omitempty" yaml:"ucd,omitempty"`
	Ref          string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Datatype     string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Unit         string `json:"unit,omitempty" yaml:"unit,omitempty"`
	MaxArraysize string `json:"maxarraysize,omitempty" yaml:"maxarraysize,omitempty"`
	MaxWidth     string `json:"maxwidth,omitempty" yaml:"maxwidth,omitempty"`
	MaxPrecision string `json:"maxprecision,omitempty" yaml:"maxprecision,omitempty"`
	Optional     bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Normalize trims every key, lower-cases the datatype and checks the
// grammars of the declared maxima and the maxarraysize/char pairing.
func (c Constraint) Normalize() (Constraint, error) {
	n := Constraint{
		Name:         strings.TrimSpace(c.Name),
		ID:           strings.TrimSpace(c.ID),
		UCD:          strings.TrimSpace(c.UCD),
		Ref:          strings.TrimSpace(c.Ref),
		Datatype:     strings.ToLower(strings.TrimSpace(c.Datatype)),
		Unit:         strings.TrimSpace(c.Unit),
		MaxArraysize: strings.TrimSpace(c.MaxArraysize),
		MaxWidth:     strings.TrimSpace(c.MaxWidth),
		MaxPrecision: strings.TrimSpace(c.MaxPrecision),
		Optional:     c.Optional,
	}

	if n.Datatype != "" {
		if _, err := ParseDatatype(n.Datatype); err != nil {
			return n, errors.Wrap(errors.ErrCodeInvalidConfig, "invalid constraint datatype", err)
		}
	}
	if n.MaxArraysize != "" {
		if _, err := ParseArraysize(n.MaxArraysize); err != nil {
			return n, errors.Wrap(errors.ErrCodeInvalidConfig, "invalid maxarraysize", err)
		}
	}
	isChar := n.Datatype == strings.ToLower(Char.String())
	if isChar != (n.MaxArraysize != "") {
		return n, errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"maxarraysize must be declared if and only if datatype is char",
			map[string]any{"datatype": n.Datatype, "maxarraysize": n.MaxArraysize})
	}
	if n.MaxWidth != "" {
		w, ok := new(big.Int).SetString(n.MaxWidth, 10)
		if !ok || w.Sign() < 0 {
			return n, errors.NewWithContext(errors.ErrCodeInvalidConfig,
				"maxwidth must be a non-negative integer", map[string]any{"maxwidth": n.MaxWidth})
		}
		n.MaxWidth = w.String()
	}
	if n.MaxPrecision != "" {
		if _, err := ParsePrecision(n.MaxPrecision); err != nil {
			return n, errors.Wrap(errors.ErrCodeInvalidConfig, "invalid maxprecision", err)
		}
	}
	return n, nil
}

func (c *Constraint) isEmpty() bool {
	return c.Name == "" && c.ID == "" && c.UCD == "" && c.Ref == "" && c.Datatype == "" &&
		c.Unit == "" && c.MaxArraysize == "" && c.MaxWidth == "" && c.MaxPrecision == ""
}

// RequiresMatch reports whether the constraint names a specific element
// through name, ID or UCD, so a file lacking that element is malformed.
func (c *Constraint) RequiresMatch() bool {
	return c.Name != "" || c.ID != "" || c.UCD != ""
}

// IsApplicableTo reports whether the constraint governs the given element.
// All declared identifying keys must match; without any, the datatype decides.
// A constraint with no keys at all applies to everything.
func (c *Constraint) IsApplicableTo(d votable.Descriptor) bool {
	if c.isEmpty() {
		return true
	}
	if c.RequiresMatch() {
		return (c.Name == "" || c.Name == d.Name) &&
			(c.ID == "" || c.ID == d.ID) &&
			(c.UCD == "" || c.UCD == d.UCD)
	}
	return c.Datatype != "" && c.Datatype == strings.ToLower(d.Datatype)
}

// Description lists the identifying keys, e.g. "name: 'ra', datatype: 'double'".
func (c *Constraint) Description() string {
	var parts []string
	for _, kv := range [][2]string{{"name", c.Name}, {"id", c.ID}, {"ucd", c.UCD}, {"datatype", c.Datatype}} {
		if kv[1] != "" {
			parts = append(parts, fmt.Sprintf("%s: '%s'", kv[0], kv[1]))
		}
	}
	return strings.Join(parts, ", ")
}

// ValidateField checks the element's declared attributes against the
// constraint's expectations, in order: ref, datatype, unit, arraysize,
// width and precision. The first unmet expectation is returned.
func (c *Constraint) ValidateField(d votable.Descriptor) error {
	if err := requireEqual("ref", c.Ref, d.Ref); err != nil {
		return err
	}
	if err := requireEqual("datatype", c.Datatype, strings.ToLower(d.Datatype)); err != nil {
		return err
	}
	if err := requireEqual("unit", c.Unit, d.Unit); err != nil {
		return err
	}
	if err := c.validateArraysize(d); err != nil {
		return err
	}
	if err := c.validateWidth(d); err != nil {
		return err
	}
	return c.validatePrecision(d)
}

func requireEqual(key, expected, actual string) error {
	if expected == "" {
		return nil
	}
	if actual == "" {
		return fmt.Errorf("Attribute '%s' is required and must be '%s'", key, expected)
	}
	if actual != expected {
		return fmt.Errorf("Attribute '%s' ('%s') must be '%s'", key, actual, expected)
	}
	return nil
}

func (c *Constraint) validateArraysize(d votable.Descriptor) error {
	if c.MaxArraysize == "" || d.Arraysize == "" {
		return nil
	}
	limit, err := ParseArraysize(c.MaxArraysize)
	if err != nil {
		return err
	}
	actual, err := ParseArraysize(d.Arraysize)
	if err != nil {
		return fmt.Errorf("Attribute 'arraysize' ('%s') does not match '%s'", d.Arraysize, ArraysizePattern)
	}
	if actual.ExceedsMaximum(limit) {
		return fmt.Errorf("Attribute 'arraysize' ('%s') exceeds maximum of '%s'", d.Arraysize, limit.Maximum().String())
	}
	return nil
}

func (c *Constraint) validateWidth(d votable.Descriptor) error {
	if c.MaxWidth == "" || d.Width == "" {
		return nil
	}
	limit, ok := new(big.Int).SetString(c.MaxWidth, 10)
	if !ok {
		return fmt.Errorf("maxwidth '%s' is not an integer", c.MaxWidth)
	}
	actual, ok := new(big.Int).SetString(d.Width, 10)
	if !ok {
		return fmt.Errorf("Attribute 'width' ('%s') is not an integer", d.Width)
	}
	if limit.Cmp(actual) < 0 {
		return fmt.Errorf("Attribute 'width' ('%s') is greater than maximum of '%s'", d.Width, c.MaxWidth)
	}
	return nil
}

func (c *Constraint) validatePrecision(d votable.Descriptor) error {
	if c.MaxPrecision == "" || d.Precision == "" {
		return nil
	}
	limit, err := ParsePrecision(c.MaxPrecision)
	if err != nil {
		return err
	}
	actual, err := ParsePrecision(d.Precision)
	if err != nil {
		return fmt.Errorf("Attribute 'precision' does not match '%s'", PrecisionPattern)
	}
	if !limit.ComparableTo(actual) {
		return fmt.Errorf("Attribute 'precision' ('%s') must specify a number of %s", d.Precision, limit.Kind())
	}
	if more, _ := actual.IsMorePreciseThan(limit); more {
		return fmt.Errorf("Attribute 'precision' ('%s') is more precise than maximum %s", d.Precision, limit.Description())
	}
	return nil
}

// IncompatibleConstraintsError reports two constraints that match the same
// element but disagree on a key.
type IncompatibleConstraintsError struct {
	Key string
}

func (e *IncompatibleConstraintsError) Error() string {
	return fmt.Sprintf("constraints have incompatible %s attributes", e.Key)
}

// Merge combines two constraints that match the same element. Identity,
// ref, unit and datatype must agree where both declare them. Maxima merge to
// the more restrictive value; a merged maxarraysize stays variable when
// either side is.
func (c Constraint) Merge(other Constraint) (Constraint, error) {
	m := c
	for _, k := range []struct {
		key  string
		to   *string
		from string
	}{
		{"name", &m.Name, other.Name},
		{"id", &m.ID, other.ID},
		{"ucd", &m.UCD, other.UCD},
		{"datatype", &m.Datatype, other.Datatype},
		{"ref", &m.Ref, other.Ref},
		{"unit", &m.Unit, other.Unit},
	} {
		if *k.to == "" {
			*k.to = k.from
		} else if k.from != "" && k.from != *k.to {
			return c, &IncompatibleConstraintsError{Key: k.key}
		}
	}

	switch {
	case m.MaxArraysize == "":
		m.MaxArraysize = other.MaxArraysize
	case other.MaxArraysize != "":
		to, err1 := ParseArraysize(m.MaxArraysize)
		from, err2 := ParseArraysize(other.MaxArraysize)
		if err1 == nil && err2 == nil {
			bound := to
			if to.ExceedsMaximum(from) || !to.HasMaximum() {
				bound = from
			}
			m.MaxArraysize = ""
			if bound.HasMaximum() {
				m.MaxArraysize = bound.Maximum().String()
			}
			if to.IsVariable() || from.IsVariable() {
				m.MaxArraysize += "*"
			}
		}
	}

	switch {
	case m.MaxWidth == "":
		m.MaxWidth = other.MaxWidth
	case other.MaxWidth != "":
		to, ok1 := new(big.Int).SetString(m.MaxWidth, 10)
		from, ok2 := new(big.Int).SetString(other.MaxWidth, 10)
		if ok1 && ok2 && to.Cmp(from) > 0 {
			m.MaxWidth = other.MaxWidth
		}
	}

	switch {
	case m.MaxPrecision == "":
		m.MaxPrecision = other.MaxPrecision
	case other.MaxPrecision != "":
		to, err1 := ParsePrecision(m.MaxPrecision)
		from, err2 := ParsePrecision(other.MaxPrecision)
		if err1 == nil && err2 == nil {
			more, err := to.IsMorePreciseThan(from)
			if err != nil {
				return c, &IncompatibleConstraintsError{Key: "precision"}
			}
			if more {
				m.MaxPrecision = other.MaxPrecision
			}
		}
	}

	m.Optional = c.Optional && other.Optional
	return m, nil
}
