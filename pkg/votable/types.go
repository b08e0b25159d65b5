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

package votable

// Descriptor carries the raw attributes shared by FIELD and PARAM elements.
type Descriptor struct {
	Name      string `json:"name" yaml:"name"`
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	UCD       string `json:"ucd,omitempty" yaml:"ucd,omitempty"`
	Ref       string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Datatype  string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Unit      string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Arraysize string `json:"arraysize,omitempty" yaml:"arraysize,omitempty"`
	Width     string `json:"width,omitempty" yaml:"width,omitempty"`
	Precision string `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// Field declares one column of a table.
type Field struct {
	Descriptor
}

// Param declares a scalar table-level value.
type Param struct {
	Descriptor
	Value string `json:"value" yaml:"value"`
}

// Cell is a single TD. Value is the raw character data.
type Cell struct {
	Value string
}

// Row is a single TR.
type Row struct {
	Cells []Cell
}

// Table is a TABLE element with its declarations and TABLEDATA rows.
type Table struct {
	Name   string
	Params []Param
	Fields []Field
	Rows   []Row
}

// Resource is a RESOURCE element. Resources may nest.
type Resource struct {
	Name      string
	Tables    []*Table
	Resources []*Resource
}

// VOTable is the document root.
type VOTable struct {
	Version   string
	Resources []*Resource
}

// Tables returns every table in the document, depth first in document order.
func (v *VOTable) Tables() []*Table {
	if v == nil {
		return nil
	}
	var out []*Table
	for _, r := range v.Resources {
		out = r.appendTables(out)
	}
	return out
}

func (r *Resource) appendTables(out []*Table) []*Table {
	if r == nil {
		return out
	}
	out = append(out, r.Tables...)
	for _, child := range r.Resources {
		out = child.appendTables(out)
	}
	return out
}

// NewRow builds a row from raw cell values.
func NewRow(values ...string) Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Value: v}
	}
	return Row{Cells: cells}
}

// Single wraps one table in a single-resource document.
func Single(t *Table) *VOTable {
	return &VOTable{Resources: []*Resource{{Tables: []*Table{t}}}}
}
