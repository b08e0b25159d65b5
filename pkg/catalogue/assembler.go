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

package catalogue

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/askap/vodeposit/pkg/header"
	"github.com/askap/vodeposit/pkg/validator"
)

const (
	// ParamImageFile names the image the catalogue was derived from.
	ParamImageFile = "imageFile"

	// ParamReferenceFrequency carries the continuum reference frequency.
	ParamReferenceFrequency = "Reference frequency"

	speedOfLight = 299792458.0
)

// Entry is one catalogue row keyed by field name. Blank cells are nil.
type Entry map[string]any

// Catalogue is the typed content of an accepted catalogue file.
type Catalogue struct {
	header.Header `json:",inline" yaml:",inline"`

	Type   Type   `json:"type" yaml:"type"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ImageFile is the valid imageFile PARAM, if any.
	ImageFile string `json:"imageFile,omitempty" yaml:"imageFile,omitempty"`

	// FreqRef is the continuum reference frequency in Hz.
	FreqRef *float32 `json:"freqRef,omitempty" yaml:"freqRef,omitempty"`

	// EmMin and EmMax bound the observed wavelength in metres.
	EmMin *float64 `json:"emMin,omitempty" yaml:"emMin,omitempty"`
	EmMax *float64 `json:"emMax,omitempty" yaml:"emMax,omitempty"`

	Params  map[string]any `json:"params" yaml:"params"`
	Entries []Entry        `json:"entries" yaml:"entries"`

	columns []string
}

// TableColumns lists the fields in document order.
func (c *Catalogue) TableColumns() []string {
	return append([]string(nil), c.columns...)
}

// TableRows renders every entry in column order. Nil values are blank.
func (c *Catalogue) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		row := make([]string, len(c.columns))
		for i, col := range c.columns {
			if v := e[col]; v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Assembler turns validated PARAMs and rows into a Catalogue. Its handlers
// are wired into a validator; one Assembler serves one file.
type Assembler struct {
	catalogue *Catalogue
	images    map[string]bool
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithKnownImages restricts the imageFile PARAM to the given file names.
// Without it any imageFile value is accepted.
func WithKnownImages(names ...string) AssemblerOption {
	return func(a *Assembler) {
		if len(names) == 0 {
			return
		}
		a.images = make(map[string]bool, len(names))
		for _, n := range names {
			a.images[n] = true
		}
	}
}

// NewAssembler creates an assembler for an empty catalogue of type t.
func NewAssembler(t Type, source, version string, runID uuid.UUID, opts ...AssemblerOption) *Assembler {
	c := &Catalogue{
		Type:    t,
		Source:  source,
		Params:  make(map[string]any),
		Entries: make([]Entry, 0),
	}
	c.Init(header.KindCatalogue, validator.APIVersion, version)
	c.Set(header.MetadataRunID, runID.String())
	if source != "" {
		c.Set(header.MetadataSource, source)
	}

	a := &Assembler{catalogue: c}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalogue returns the catalogue assembled so far.
func (a *Assembler) Catalogue() *Catalogue {
	return a.catalogue
}

// Options returns the validator options that feed this assembler.
func (a *Assembler) Options() []validator.Option {
	return []validator.Option{
		validator.WithParamHandler(a.HandleParams),
		validator.WithRowHandler(a.HandleRow),
	}
}

// HandleParams records the valid PARAMs as catalogue metadata. An imageFile
// that names no known image is reported against the PARAM.
func (a *Assembler) HandleParams(params validator.ParamSet) error {
	c := a.catalogue
	for _, p := range params.Params {
		c.Params[p.Param.Name] = p.Value
	}

	if v, ok := params.Get(ParamImageFile); ok && v != nil {
		name := fmt.Sprint(v)
		if a.images != nil && !a.images[name] {
			return validator.Structural(
				validator.Position{Element: validator.ElementParam, Name: ParamImageFile},
				"value '%s' does not match any image in the observation", name)
		}
		c.ImageFile = name
	}

	if c.Type == TypeContinuumComponent {
		if v, ok := params.Get(ParamReferenceFrequency); ok && v != nil {
			if f, ok := toFloat64(v); ok {
				ref := float32(f)
				c.FreqRef = &ref
			}
		}
	}
	return nil
}

// HandleRow appends the row as an entry and widens the wavelength range.
func (a *Assembler) HandleRow(row validator.TypedRow) error {
	c := a.catalogue
	if c.columns == nil {
		c.columns = make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			c.columns = append(c.columns, cell.Field.Name)
		}
	}

	entry := make(Entry, len(row.Cells))
	for _, cell := range row.Cells {
		entry[cell.Field.Name] = cell.Value
	}
	c.Entries = append(c.Entries, entry)

	if field := c.Type.FrequencyField(); field != "" {
		if v, ok := row.Get(field); ok {
			if mhz, ok := toFloat64(v); ok {
				c.widen(FrequencyToWavelength(mhz))
			}
		}
	}
	return nil
}

func (c *Catalogue) widen(wavelength float64) {
	if wavelength <= 0 {
		return
	}
	if c.EmMin == nil || wavelength < *c.EmMin {
		v := wavelength
		c.EmMin = &v
	}
	if c.EmMax == nil || wavelength > *c.EmMax {
		v := wavelength
		c.EmMax = &v
	}
}

// FrequencyToWavelength converts a frequency in MHz to a wavelength in
// metres. Non-positive frequencies yield 0.
func FrequencyToWavelength(mhz float64) float64 {
	if mhz <= 0 {
		return 0
	}
	return speedOfLight / (mhz * 1e6)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		// go through the decimal text so 1400.5 stays 1400.5
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'g', -1, 32), 64)
		return f, err == nil
	case float64:
		return n, true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
