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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/votable"
)

func TestConstraintNormalize(t *testing.T) {
	tests := []struct {
		name        string
		c           Constraint
		want        Constraint
		expectError bool
	}{
		{
			name: "trims and lowercases",
			c:    Constraint{Name: " ra ", Datatype: " DOUBLE ", MaxWidth: "007", MaxPrecision: " F3 "},
			want: Constraint{Name: "ra", Datatype: "double", MaxWidth: "7", MaxPrecision: "F3"},
		},
		{
			name: "char with maxarraysize",
			c:    Constraint{Name: "comment", Datatype: "char", MaxArraysize: "100*"},
			want: Constraint{Name: "comment", Datatype: "char", MaxArraysize: "100*"},
		},
		{name: "char without maxarraysize", c: Constraint{Name: "x", Datatype: "char"}, expectError: true},
		{name: "maxarraysize without char", c: Constraint{Name: "x", Datatype: "int", MaxArraysize: "10"}, expectError: true},
		{name: "maxarraysize without datatype", c: Constraint{Name: "x", MaxArraysize: "10"}, expectError: true},
		{name: "unsupported datatype", c: Constraint{Name: "x", Datatype: "complex"}, expectError: true},
		{name: "bad maxarraysize", c: Constraint{Name: "x", Datatype: "char", MaxArraysize: "1x"}, expectError: true},
		{name: "negative maxwidth", c: Constraint{Name: "x", MaxWidth: "-2"}, expectError: true},
		{name: "bad maxprecision", c: Constraint{Name: "x", MaxPrecision: "X1"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.c.Normalize()
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstraintIsApplicableTo(t *testing.T) {
	ra := votable.Descriptor{Name: "ra", ID: "col1", UCD: "pos.eq.ra", Datatype: "DOUBLE"}

	tests := []struct {
		name string
		c    Constraint
		want bool
	}{
		{name: "empty applies to all", c: Constraint{}, want: true},
		{name: "name match ignores datatype", c: Constraint{Name: "ra", Datatype: "int"}, want: true},
		{name: "name mismatch", c: Constraint{Name: "dec"}, want: false},
		{name: "ucd match", c: Constraint{UCD: "pos.eq.ra"}, want: true},
		{name: "ucd mismatch", c: Constraint{UCD: "pos.eq.dec"}, want: false},
		{name: "name and ucd both match", c: Constraint{Name: "ra", UCD: "pos.eq.ra"}, want: true},
		{name: "name matches ucd does not", c: Constraint{Name: "ra", UCD: "pos.eq.dec"}, want: false},
		{name: "id match", c: Constraint{ID: "col1"}, want: true},
		{name: "id mismatch", c: Constraint{Name: "ra", ID: "col2"}, want: false},
		{name: "datatype only", c: Constraint{Datatype: "double"}, want: true},
		{name: "datatype only mismatch", c: Constraint{Datatype: "float"}, want: false},
		{name: "unit only", c: Constraint{Unit: "deg"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.IsApplicableTo(ra))
		})
	}
}

func TestConstraintDescription(t *testing.T) {
	c := Constraint{Name: "flux_peak", UCD: "phot.flux", Datatype: "double", Unit: "mJy"}
	assert.Equal(t, "name: 'flux_peak', ucd: 'phot.flux', datatype: 'double'", c.Description())
}

func TestConstraintValidateField(t *testing.T) {
	tests := []struct {
		name    string
		c       Constraint
		d       votable.Descriptor
		wantErr string
	}{
		{name: "all satisfied", c: Constraint{Ref: "J2000", Datatype: "double", Unit: "deg"},
			d: votable.Descriptor{Ref: "J2000", Datatype: "double", Unit: "deg"}},
		{name: "datatype case", c: Constraint{Datatype: "unsignedbyte"}, d: votable.Descriptor{Datatype: "unsignedByte"}},
		{name: "ref missing", c: Constraint{Ref: "J2000"}, d: votable.Descriptor{},
			wantErr: "Attribute 'ref' is required and must be 'J2000'"},
		{name: "ref before datatype", c: Constraint{Ref: "J2000", Datatype: "double"}, d: votable.Descriptor{Ref: "B1950", Datatype: "char"},
			wantErr: "Attribute 'ref' ('B1950') must be 'J2000'"},
		{name: "datatype mismatch", c: Constraint{Datatype: "double"}, d: votable.Descriptor{Datatype: "char"},
			wantErr: "Attribute 'datatype' ('char') must be 'double'"},
		{name: "unit mismatch", c: Constraint{Unit: "deg"}, d: votable.Descriptor{Unit: "rad"},
			wantErr: "Attribute 'unit' ('rad') must be 'deg'"},
		{name: "undeclared expectation", c: Constraint{}, d: votable.Descriptor{Unit: "rad", Ref: "x"}},
		{name: "arraysize within", c: Constraint{Datatype: "char", MaxArraysize: "10"}, d: votable.Descriptor{Datatype: "char", Arraysize: "10*"}},
		{name: "arraysize unbounded", c: Constraint{Datatype: "char", MaxArraysize: "10"}, d: votable.Descriptor{Datatype: "char", Arraysize: "*"}},
		{name: "arraysize exceeds", c: Constraint{Datatype: "char", MaxArraysize: "10*"}, d: votable.Descriptor{Datatype: "char", Arraysize: "11"},
			wantErr: "Attribute 'arraysize' ('11') exceeds maximum of '10'"},
		{name: "width exceeds", c: Constraint{MaxWidth: "6"}, d: votable.Descriptor{Width: "7"},
			wantErr: "Attribute 'width' ('7') is greater than maximum of '6'"},
		{name: "width equal", c: Constraint{MaxWidth: "6"}, d: votable.Descriptor{Width: "6"}},
		{name: "precision kind", c: Constraint{MaxPrecision: "E5"}, d: votable.Descriptor{Precision: "F2"},
			wantErr: "Attribute 'precision' ('F2') must specify a number of significant digits"},
		{name: "precision exceeds", c: Constraint{MaxPrecision: "F3"}, d: votable.Descriptor{Precision: "4"},
			wantErr: "Attribute 'precision' ('4') is more precise than maximum 3 decimal places"},
		{name: "precision within", c: Constraint{MaxPrecision: "F3"}, d: votable.Descriptor{Precision: "F3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.ValidateField(tt.d)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestConstraintMerge(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Constraint
		want    Constraint
		wantKey string
	}{
		{
			name: "fills undeclared keys",
			a:    Constraint{Name: "ra"},
			b:    Constraint{Datatype: "double", Unit: "deg"},
			want: Constraint{Name: "ra", Datatype: "double", Unit: "deg"},
		},
		{
			name: "smaller arraysize keeps variability",
			a:    Constraint{Datatype: "char", MaxArraysize: "20*"},
			b:    Constraint{Datatype: "char", MaxArraysize: "10"},
			want: Constraint{Datatype: "char", MaxArraysize: "10*"},
		},
		{
			name: "variability from the larger side",
			a:    Constraint{Datatype: "char", MaxArraysize: "10"},
			b:    Constraint{Datatype: "char", MaxArraysize: "20*"},
			want: Constraint{Datatype: "char", MaxArraysize: "10*"},
		},
		{
			name: "smaller width",
			a:    Constraint{MaxWidth: "8"},
			b:    Constraint{MaxWidth: "6"},
			want: Constraint{MaxWidth: "6"},
		},
		{
			name: "less precise wins",
			a:    Constraint{MaxPrecision: "F4"},
			b:    Constraint{MaxPrecision: "F2"},
			want: Constraint{MaxPrecision: "F2"},
		},
		{
			name: "optional only if both are",
			a:    Constraint{Name: "x", Optional: true},
			b:    Constraint{Name: "x"},
			want: Constraint{Name: "x"},
		},
		{name: "unit conflict", a: Constraint{Unit: "deg"}, b: Constraint{Unit: "rad"}, wantKey: "unit"},
		{name: "datatype conflict", a: Constraint{Datatype: "int"}, b: Constraint{Datatype: "long"}, wantKey: "datatype"},
		{name: "precision kinds", a: Constraint{MaxPrecision: "F2"}, b: Constraint{MaxPrecision: "E2"}, wantKey: "precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Merge(tt.b)
			if tt.wantKey != "" {
				var ic *IncompatibleConstraintsError
				require.ErrorAs(t, err, &ic)
				assert.Equal(t, tt.wantKey, ic.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstraintSet(t *testing.T) {
	set, err := NewConstraintSet(
		[]Constraint{{Name: "imageFile", Datatype: "char", MaxArraysize: "50"}},
		[]Constraint{
			{Name: "ra_deg_cont", Datatype: "double", Unit: "deg"},
			{UCD: "phot.flux", Datatype: "double"},
			{Name: "comment", Datatype: "char", MaxArraysize: "100", Optional: true},
			{Datatype: "double", MaxPrecision: "F6"},
		},
	)
	require.NoError(t, err)
	assert.Len(t, set.Params(), 1)
	assert.Len(t, set.Fields(), 4)

	c, err := set.ForField(votable.Descriptor{Name: "ra_deg_cont", Datatype: "double"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "deg", c.Unit)
	assert.Equal(t, "F6", c.MaxPrecision)

	c, err = set.ForField(votable.Descriptor{Name: "n_pix", Datatype: "int"})
	require.NoError(t, err)
	assert.Nil(t, c)

	missing := set.MissingFields([]votable.Descriptor{{Name: "ra_deg_cont", Datatype: "double"}})
	require.Len(t, missing, 1)
	assert.Equal(t, "ucd: 'phot.flux', datatype: 'double'", missing[0].Description())

	assert.Empty(t, set.MissingParams([]votable.Descriptor{{Name: "imageFile"}}))
	assert.Len(t, set.MissingParams(nil), 1)

	var empty *ConstraintSet
	c, err = empty.ForParam(votable.Descriptor{Name: "x"})
	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, empty.MissingFields(nil))
}

func TestNewConstraintSetRejectsMalformed(t *testing.T) {
	_, err := NewConstraintSet(nil, []Constraint{
		{Name: "ok", Datatype: "int"},
		{Name: "bad", Datatype: "char"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid FIELD constraint 2")
}
