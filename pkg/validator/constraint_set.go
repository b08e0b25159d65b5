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

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/votable"
)

// ConstraintSet is the immutable, validated set of PARAM and FIELD
// constraints for one catalogue type. It is safe for concurrent use.
type ConstraintSet struct {
	params []Constraint
	fields []Constraint
}

// NewConstraintSet normalizes and checks every constraint. Any malformed
// entry fails the whole set.
func NewConstraintSet(params, fields []Constraint) (*ConstraintSet, error) {
	s := &ConstraintSet{
		params: make([]Constraint, 0, len(params)),
		fields: make([]Constraint, 0, len(fields)),
	}
	for i, c := range params {
		n, err := c.Normalize()
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid PARAM constraint %d", i+1), err, map[string]any{"constraint": c.Description()})
		}
		s.params = append(s.params, n)
	}
	for i, c := range fields {
		n, err := c.Normalize()
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid FIELD constraint %d", i+1), err, map[string]any{"constraint": c.Description()})
		}
		s.fields = append(s.fields, n)
	}
	return s, nil
}

// Params returns a copy of the PARAM constraints in declaration order.
func (s *ConstraintSet) Params() []Constraint {
	if s == nil {
		return nil
	}
	return append([]Constraint(nil), s.params...)
}

// Fields returns a copy of the FIELD constraints in declaration order.
func (s *ConstraintSet) Fields() []Constraint {
	if s == nil {
		return nil
	}
	return append([]Constraint(nil), s.fields...)
}

// ForParam returns the merge of every PARAM constraint applicable to d,
// or nil when none applies.
func (s *ConstraintSet) ForParam(d votable.Descriptor) (*Constraint, error) {
	if s == nil {
		return nil, nil
	}
	return merged(s.params, d)
}

// ForField returns the merge of every FIELD constraint applicable to d,
// or nil when none applies.
func (s *ConstraintSet) ForField(d votable.Descriptor) (*Constraint, error) {
	if s == nil {
		return nil, nil
	}
	return merged(s.fields, d)
}

// MissingParams returns the required PARAM constraints no element satisfies.
func (s *ConstraintSet) MissingParams(present []votable.Descriptor) []Constraint {
	if s == nil {
		return nil
	}
	return missing(s.params, present)
}

// MissingFields returns the required FIELD constraints no element satisfies.
func (s *ConstraintSet) MissingFields(present []votable.Descriptor) []Constraint {
	if s == nil {
		return nil
	}
	return missing(s.fields, present)
}

func merged(constraints []Constraint, d votable.Descriptor) (*Constraint, error) {
	var result *Constraint
	for i := range constraints {
		c := &constraints[i]
		if !c.IsApplicableTo(d) {
			continue
		}
		if result == nil {
			m := *c
			result = &m
			continue
		}
		m, err := result.Merge(*c)
		if err != nil {
			return nil, err
		}
		result = &m
	}
	return result, nil
}

func missing(constraints []Constraint, present []votable.Descriptor) []Constraint {
	var out []Constraint
	for i := range constraints {
		c := &constraints[i]
		if !c.RequiresMatch() || c.Optional {
			continue
		}
		found := false
		for _, d := range present {
			if c.IsApplicableTo(d) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, *c)
		}
	}
	return out
}
