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

import "sort"

// keyedErrors keeps errors grouped by key in first-seen key order.
type keyedErrors struct {
	order []string
	byKey map[string][]*ValidationError
}

func (k *keyedErrors) add(key string, err *ValidationError) {
	if k.byKey == nil {
		k.byKey = make(map[string][]*ValidationError)
	}
	if _, ok := k.byKey[key]; !ok {
		k.order = append(k.order, key)
	}
	k.byKey[key] = append(k.byKey[key], err)
}

func (k *keyedErrors) has(key string) bool {
	return len(k.byKey[key]) > 0
}

func (k *keyedErrors) all() []*ValidationError {
	var out []*ValidationError
	for _, key := range k.order {
		out = append(out, k.byKey[key]...)
	}
	return out
}

// Collector accumulates validation errors for one traversal. In fail-fast
// mode every record call returns the error it was given, so the caller can
// stop at once; otherwise record calls return nil and the error is kept.
type Collector struct {
	failFast bool
	table    []*ValidationError
	params   keyedErrors
	fields   keyedErrors
	rows     map[int][]*ValidationError
	cells    map[int]*keyedErrors
	count    int
}

// NewCollector returns an empty collector.
func NewCollector(failFast bool) *Collector {
	return &Collector{
		failFast: failFast,
		rows:     make(map[int][]*ValidationError),
		cells:    make(map[int]*keyedErrors),
	}
}

// FailFast reports the collector's policy.
func (c *Collector) FailFast() bool {
	return c.failFast
}

// Table records a table-wide error. Identical messages are kept once.
func (c *Collector) Table(err *ValidationError) error {
	if c.failFast {
		return err
	}
	for _, e := range c.table {
		if e.Error() == err.Error() {
			return nil
		}
	}
	c.table = append(c.table, err)
	c.count++
	return nil
}

// Param records an error against the PARAM identified by key.
func (c *Collector) Param(key string, err *ValidationError) error {
	if c.failFast {
		return err
	}
	c.params.add(key, err)
	c.count++
	return nil
}

// Field records an error against the FIELD identified by key.
func (c *Collector) Field(key string, err *ValidationError) error {
	if c.failFast {
		return err
	}
	c.fields.add(key, err)
	c.count++
	return nil
}

// Row records a row-level error for the 1-based row index.
func (c *Collector) Row(row int, err *ValidationError) error {
	if c.failFast {
		return err
	}
	c.rows[row] = append(c.rows[row], err)
	c.count++
	return nil
}

// Cell records an error for the cell of the named field in row.
func (c *Collector) Cell(row int, field string, err *ValidationError) error {
	if c.failFast {
		return err
	}
	k, ok := c.cells[row]
	if !ok {
		k = &keyedErrors{}
		c.cells[row] = k
	}
	k.add(field, err)
	c.count++
	return nil
}

// HasParamErrors reports whether any error was recorded for the PARAM key.
func (c *Collector) HasParamErrors(key string) bool {
	return c.params.has(key)
}

// HasFieldErrors reports whether any error was recorded for the FIELD key.
func (c *Collector) HasFieldErrors(key string) bool {
	return c.fields.has(key)
}

// HasRowErrors reports whether a row-level error was recorded for row.
func (c *Collector) HasRowErrors(row int) bool {
	return len(c.rows[row]) > 0
}

// HasCellErrors reports whether the named field's cell in row has errors.
func (c *Collector) HasCellErrors(row int, field string) bool {
	k, ok := c.cells[row]
	return ok && k.has(field)
}

// Len returns the number of recorded errors, duplicates included.
func (c *Collector) Len() int {
	return c.count
}

// Errors returns the report in order: table errors, PARAM errors, FIELD
// errors, then rows in index order. A row with row-level errors reports only
// those, not its cell errors.
func (c *Collector) Errors() []*ValidationError {
	out := append([]*ValidationError(nil), c.table...)
	out = append(out, c.params.all()...)
	out = append(out, c.fields.all()...)

	seen := make(map[int]bool, len(c.rows)+len(c.cells))
	indexes := make([]int, 0, len(c.rows)+len(c.cells))
	for i := range c.rows {
		if !seen[i] {
			seen[i] = true
			indexes = append(indexes, i)
		}
	}
	for i := range c.cells {
		if !seen[i] {
			seen[i] = true
			indexes = append(indexes, i)
		}
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		if rowErrs := c.rows[i]; len(rowErrs) > 0 {
			out = append(out, rowErrs...)
			continue
		}
		out = append(out, c.cells[i].all()...)
	}
	return out
}

// Messages renders Errors as strings.
func (c *Collector) Messages() []string {
	errs := c.Errors()
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
