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
	"bytes"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/serializer"
	"github.com/askap/vodeposit/pkg/validator"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

// constraintFile is the on-disk layout of a constraint registry.
type constraintFile struct {
	Params []constraintEntry `json:"params" yaml:"params"`
	Fields []constraintEntry `json:"fields" yaml:"fields"`
}

// constraintEntry keeps every key as text; blank means not declared.
type constraintEntry struct {
	Name         string `json:"name" yaml:"name"`
	ID           string `json:"id" yaml:"id"`
	UCD          string `json:"ucd" yaml:"ucd"`
	Ref          string `json:"ref" yaml:"ref"`
	Datatype     string `json:"datatype" yaml:"datatype"`
	Unit         string `json:"unit" yaml:"unit"`
	MaxArraysize string `json:"maxarraysize" yaml:"maxarraysize"`
	MaxWidth     string `json:"maxwidth" yaml:"maxwidth"`
	MaxPrecision string `json:"maxprecision" yaml:"maxprecision"`
	Optional     string `json:"optional" yaml:"optional"`
}

func (e constraintEntry) constraint() (validator.Constraint, error) {
	c := validator.Constraint{
		Name:         e.Name,
		ID:           e.ID,
		UCD:          e.UCD,
		Ref:          e.Ref,
		Datatype:     e.Datatype,
		Unit:         e.Unit,
		MaxArraysize: e.MaxArraysize,
		MaxWidth:     e.MaxWidth,
		MaxPrecision: e.MaxPrecision,
	}
	if opt := strings.TrimSpace(e.Optional); opt != "" {
		b, err := strconv.ParseBool(opt)
		if err != nil {
			return c, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "optional must be true or false", err,
				map[string]any{"constraint": c.Description(), "optional": e.Optional})
		}
		c.Optional = b
	}
	return c, nil
}

func (f *constraintFile) constraintSet() (*validator.ConstraintSet, error) {
	params, err := toConstraints(f.Params)
	if err != nil {
		return nil, err
	}
	fields, err := toConstraints(f.Fields)
	if err != nil {
		return nil, err
	}
	return validator.NewConstraintSet(params, fields)
}

func toConstraints(entries []constraintEntry) ([]validator.Constraint, error) {
	out := make([]validator.Constraint, 0, len(entries))
	for _, e := range entries {
		c, err := e.constraint()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// LoadConstraints reads a YAML constraint registry. Unknown keys and any
// malformed entry are INVALID_CONFIG errors.
func LoadConstraints(r io.Reader) (*validator.ConstraintSet, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, r, serializer.WithStrictFields())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create constraint reader", err)
	}
	var file constraintFile
	if err := reader.Deserialize(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "failed to parse constraints", err)
	}
	return file.constraintSet()
}

// LoadConstraintsFile reads a JSON or YAML constraint registry from path.
func LoadConstraintsFile(path string) (*validator.ConstraintSet, error) {
	file, err := serializer.FromFile[constraintFile](path, serializer.WithStrictFields())
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeNotFound {
			return nil, err
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to load constraints", err,
			map[string]any{"path": path})
	}
	set, err := file.constraintSet()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded constraints", "path", path,
		"params", len(set.Params()), "fields", len(set.Fields()))
	return set, nil
}

// Registry maps each catalogue type to its constraint set. A Registry is
// read-only once built and safe for concurrent use.
type Registry struct {
	sets map[Type]*validator.ConstraintSet
}

// Global registry of built-in constraints (loaded once, thread-safe access)
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
	defaultRegistryErr  error
)

// DefaultRegistry returns the registry built from the embedded constraint
// files. It is loaded once and cached.
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	return defaultRegistry, defaultRegistryErr
}

// MustDefaultRegistry returns the default registry or panics.
func MustDefaultRegistry() *Registry {
	reg, err := DefaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("failed to load catalogue registry: %v", err))
	}
	return reg
}

// NewRegistry loads the embedded constraint file of every catalogue type.
func NewRegistry() (*Registry, error) {
	r := &Registry{sets: make(map[Type]*validator.ConstraintSet, len(allTypes))}
	for _, t := range allTypes {
		data, err := schemaFS.ReadFile(t.schemaFile())
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal, "embedded constraints missing", err,
				map[string]any{"type": t})
		}
		set, err := LoadConstraints(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		r.sets[t] = set
	}
	return r, nil
}

// Get returns the constraint set of t.
func (r *Registry) Get(t Type) (*validator.ConstraintSet, error) {
	if r != nil {
		if set, ok := r.sets[t]; ok {
			return set, nil
		}
	}
	return nil, errors.NewWithContext(errors.ErrCodeNotFound, "no constraints registered for catalogue type",
		map[string]any{"type": t})
}

// With returns a copy of the registry with the constraints of t replaced.
func (r *Registry) With(t Type, set *validator.ConstraintSet) *Registry {
	out := &Registry{sets: make(map[Type]*validator.ConstraintSet, len(allTypes))}
	if r != nil {
		for k, v := range r.sets {
			out.sets[k] = v
		}
	}
	out.sets[t] = set
	return out
}
