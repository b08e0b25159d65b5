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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askap/vodeposit/pkg/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"canonical", "continuum-island", TypeContinuumIsland, false},
		{"upper case", "CONTINUUM-COMPONENT", TypeContinuumComponent, false},
		{"underscores", "spectral_line_emission", TypeSpectralLineEmission, false},
		{"spaces", "  polarisation component ", TypePolarisationComponent, false},
		{"unknown", "level7", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeTitle(t *testing.T) {
	assert.Equal(t, "Continuum Island", TypeContinuumIsland.Title())
	assert.Equal(t, "Spectral Line Absorption", TypeSpectralLineAbsorption.Title())
}

func TestFrequencyField(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeContinuumIsland, "freq"},
		{TypeContinuumComponent, "freq"},
		{TypePolarisationComponent, ""},
		{TypeSpectralLineAbsorption, "freq_w"},
		{TypeSpectralLineEmission, "freq_w"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.FrequencyField())
		})
	}
}

func TestTypesIsACopy(t *testing.T) {
	types := Types()
	require.Len(t, types, 5)
	types[0] = "changed"
	assert.Equal(t, TypeContinuumIsland, Types()[0])
	assert.Equal(t, []string{
		"continuum-island",
		"continuum-component",
		"polarisation-component",
		"spectral-line-absorption",
		"spectral-line-emission",
	}, TypeNames())
}
