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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/askap/vodeposit/pkg/errors"
)

// Type identifies a catalogue schema.
type Type string

const (
	TypeContinuumIsland        Type = "continuum-island"
	TypeContinuumComponent     Type = "continuum-component"
	TypePolarisationComponent  Type = "polarisation-component"
	TypeSpectralLineAbsorption Type = "spectral-line-absorption"
	TypeSpectralLineEmission   Type = "spectral-line-emission"
)

var allTypes = []Type{
	TypeContinuumIsland,
	TypeContinuumComponent,
	TypePolarisationComponent,
	TypeSpectralLineAbsorption,
	TypeSpectralLineEmission,
}

var titler = cases.Title(language.English)

// Types returns every supported catalogue type in a stable order.
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

// TypeNames returns the supported catalogue types as strings.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	return names
}

// ParseType accepts a catalogue type in any case, with '-', '_' or ' '
// as word separators.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	for _, t := range allTypes {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", errors.NewWithContext(errors.ErrCodeNotFound, "unknown catalogue type",
		map[string]any{"type": s, "supported": TypeNames()})
}

// Title returns a human-readable name such as "Continuum Island".
func (t Type) Title() string {
	return titler.String(strings.ReplaceAll(string(t), "-", " "))
}

// FrequencyField names the column, in MHz, that bounds the catalogue's
// wavelength range. Empty when the type carries none.
func (t Type) FrequencyField() string {
	switch t {
	case TypeContinuumIsland, TypeContinuumComponent:
		return "freq"
	case TypeSpectralLineAbsorption, TypeSpectralLineEmission:
		return "freq_w"
	case TypePolarisationComponent:
		return ""
	default:
		return ""
	}
}

func (t Type) schemaFile() string {
	return "schemas/" + string(t) + ".yaml"
}
