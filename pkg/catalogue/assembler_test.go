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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askap/vodeposit/pkg/header"
	"github.com/askap/vodeposit/pkg/validator"
	"github.com/askap/vodeposit/pkg/votable"
)

func typedRow(index int, values map[string]any, order ...string) validator.TypedRow {
	row := validator.TypedRow{Index: index}
	for _, name := range order {
		row.Cells = append(row.Cells, validator.TypedCell{
			Field: votable.Field{Descriptor: votable.Descriptor{Name: name}},
			Value: values[name],
		})
	}
	return row
}

func paramSet(values map[string]any) validator.ParamSet {
	var set validator.ParamSet
	for name, v := range values {
		set.Params = append(set.Params, validator.TypedParam{
			Param: votable.Param{Descriptor: votable.Descriptor{Name: name}},
			Value: v,
		})
	}
	return set
}

func TestNewAssemblerHeader(t *testing.T) {
	runID := uuid.New()
	a := NewAssembler(TypeContinuumIsland, "islands.xml", "v1.2.3", runID)
	c := a.Catalogue()

	assert.Equal(t, header.KindCatalogue, c.Kind)
	assert.Equal(t, validator.APIVersion, c.APIVersion)
	assert.Equal(t, runID.String(), c.Metadata[header.MetadataRunID])
	assert.Equal(t, "islands.xml", c.Metadata[header.MetadataSource])
	assert.Equal(t, "v1.2.3", c.Metadata[header.MetadataVersion])
	assert.Empty(t, c.Entries)
	assert.Len(t, a.Options(), 2)
}

func TestHandleParams(t *testing.T) {
	tests := []struct {
		name      string
		typ       Type
		images    []string
		params    map[string]any
		wantErr   string
		wantImage string
		wantRef   *float32
	}{
		{
			name:      "image file accepted without known images",
			typ:       TypeContinuumIsland,
			params:    map[string]any{ParamImageFile: "image.i.SB1234.cont.taylor.0.restored.fits"},
			wantImage: "image.i.SB1234.cont.taylor.0.restored.fits",
		},
		{
			name:      "image file matches known image",
			typ:       TypeContinuumIsland,
			images:    []string{"a.fits", "b.fits"},
			params:    map[string]any{ParamImageFile: "b.fits"},
			wantImage: "b.fits",
		},
		{
			name:    "image file unknown",
			typ:     TypeContinuumIsland,
			images:  []string{"a.fits"},
			params:  map[string]any{ParamImageFile: "c.fits"},
			wantErr: "Error in PARAM 'imageFile' : value 'c.fits' does not match any image in the observation",
		},
		{
			name:   "blank image file ignored",
			typ:    TypeContinuumIsland,
			images: []string{"a.fits"},
			params: map[string]any{ParamImageFile: nil},
		},
		{
			name:    "reference frequency on components",
			typ:     TypeContinuumComponent,
			params:  map[string]any{ParamReferenceFrequency: float32(1.3675e9)},
			wantRef: func() *float32 { f := float32(1.3675e9); return &f }(),
		},
		{
			name:   "reference frequency ignored elsewhere",
			typ:    TypeContinuumIsland,
			params: map[string]any{ParamReferenceFrequency: float32(1.3675e9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssembler(tt.typ, "", "", uuid.New(), WithKnownImages(tt.images...))
			err := a.HandleParams(paramSet(tt.params))
			if tt.wantErr != "" {
				require.Error(t, err)
				var ve *validator.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, validator.KindStructural, ve.Kind)
				assert.Equal(t, tt.wantErr, ve.Error())
				return
			}
			require.NoError(t, err)
			c := a.Catalogue()
			assert.Equal(t, tt.wantImage, c.ImageFile)
			assert.Equal(t, tt.wantRef, c.FreqRef)
			for k, v := range tt.params {
				assert.Equal(t, v, c.Params[k])
			}
		})
	}
}

func TestHandleRow(t *testing.T) {
	a := NewAssembler(TypeContinuumIsland, "", "", uuid.New())
	order := []string{"island_id", "freq", "flux_peak"}

	require.NoError(t, a.HandleRow(typedRow(1, map[string]any{"island_id": "SB1_island_1", "freq": float32(1400), "flux_peak": float32(2.5)}, order...)))
	require.NoError(t, a.HandleRow(typedRow(2, map[string]any{"island_id": "SB1_island_2", "freq": float32(700)}, order...)))
	require.NoError(t, a.HandleRow(typedRow(3, map[string]any{"island_id": "SB1_island_3", "freq": nil}, order...)))

	c := a.Catalogue()
	require.Len(t, c.Entries, 3)
	assert.Equal(t, "SB1_island_2", c.Entries[1]["island_id"])
	assert.Nil(t, c.Entries[1]["flux_peak"])

	require.NotNil(t, c.EmMin)
	require.NotNil(t, c.EmMax)
	assert.InDelta(t, 299792458.0/1400e6, *c.EmMin, 1e-12)
	assert.InDelta(t, 299792458.0/700e6, *c.EmMax, 1e-12)

	assert.Equal(t, order, c.TableColumns())
	rows := c.TableRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SB1_island_1", "1400", "2.5"}, rows[0])
	assert.Equal(t, []string{"SB1_island_3", "", ""}, rows[2])
}

func TestHandleRowWithoutFrequencyField(t *testing.T) {
	a := NewAssembler(TypePolarisationComponent, "", "", uuid.New())
	require.NoError(t, a.HandleRow(typedRow(1, map[string]any{"component_id": "c1", "freq": float32(1400)}, "component_id", "freq")))
	assert.Nil(t, a.Catalogue().EmMin)
	assert.Nil(t, a.Catalogue().EmMax)
}

func TestFrequencyToWavelength(t *testing.T) {
	tests := []struct {
		mhz  float64
		want float64
	}{
		{1420.405751, 0.21106114},
		{299.792458, 1},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, FrequencyToWavelength(tt.mhz), 1e-8)
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float32(1400.5), 1400.5, true},
		{float64(2.25), 2.25, true},
		{int16(3), 3, true},
		{int32(4), 4, true},
		{int64(5), 5, true},
		{uint8(6), 6, true},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toFloat64(tt.in)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}
