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
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/askap/vodeposit/pkg/defaults"
	"github.com/askap/vodeposit/pkg/errors"
	"github.com/askap/vodeposit/pkg/header"
	"github.com/askap/vodeposit/pkg/validator"
	"github.com/askap/vodeposit/pkg/votable"
)

// Importer validates catalogue files against a registry. Each call runs
// its own validator, so one Importer may serve concurrent callers.
type Importer struct {
	registry *Registry
	version  string
	images   []string
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithRegistry replaces the built-in constraint registry.
func WithRegistry(r *Registry) ImporterOption {
	return func(i *Importer) {
		i.registry = r
	}
}

// WithImporterVersion stamps version into emitted headers.
func WithImporterVersion(version string) ImporterOption {
	return func(i *Importer) {
		i.version = version
	}
}

// WithImages lists the image files of the observation; see WithKnownImages.
func WithImages(names ...string) ImporterOption {
	return func(i *Importer) {
		i.images = append([]string(nil), names...)
	}
}

// NewImporter creates an Importer. Without WithRegistry the embedded
// constraints are used.
func NewImporter(opts ...ImporterOption) (*Importer, error) {
	i := &Importer{}
	for _, opt := range opts {
		opt(i)
	}
	if i.registry == nil {
		reg, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		i.registry = reg
	}
	return i, nil
}

// Import decodes and validates path in fail-fast mode and returns the
// assembled catalogue. The first validation error rejects the file and is
// returned wrapped with its code; errors.As recovers the
// *validator.ValidationError.
func (i *Importer) Import(ctx context.Context, t Type, path string) (*Catalogue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ImportTimeout)
	defer cancel()

	start := time.Now()
	runID := uuid.New()
	log := slog.With("type", t, "path", path, "runId", runID.String())
	log.Info("importing catalogue")

	assembler := NewAssembler(t, path, i.version, runID, WithKnownImages(i.images...))
	result, err := i.run(ctx, t, path, true, assembler.Options()...)
	if err != nil {
		var ve *validator.ValidationError
		if stderrors.As(err, &ve) {
			observeFile(t, validator.ModeFailFast, statusRejected, time.Since(start).Seconds())
			log.Warn("catalogue rejected", "error", ve.Error())
			return nil, errors.WrapWithContext(ve.Code(), "catalogue rejected", ve,
				map[string]any{"type": t, "path": path})
		}
		observeFile(t, validator.ModeFailFast, statusFailed, time.Since(start).Seconds())
		return nil, err
	}

	observeResult(t, result)
	observeFile(t, validator.ModeFailFast, statusAccepted, time.Since(start).Seconds())

	c := assembler.Catalogue()
	log.Info("catalogue imported",
		"entries", len(c.Entries),
		"duration", time.Since(start))
	return c, nil
}

// Validate decodes and validates path in collect-all mode and returns a
// report listing every error. A non-nil error means the file could not be
// checked at all.
func (i *Importer) Validate(ctx context.Context, t Type, path string) (*validator.ValidationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ImportTimeout)
	defer cancel()

	start := time.Now()
	runID := uuid.New()
	log := slog.With("type", t, "path", path, "runId", runID.String())
	log.Info("validating catalogue")

	// PARAM checks still apply; rows are not kept.
	assembler := NewAssembler(t, path, i.version, runID, WithKnownImages(i.images...))
	result, err := i.run(ctx, t, path, false, validator.WithParamHandler(assembler.HandleParams))
	if err != nil {
		observeFile(t, validator.ModeCollectAll, statusFailed, time.Since(start).Seconds())
		return nil, err
	}

	result.Source = path
	result.CatalogueType = string(t)
	result.Set(header.MetadataRunID, runID.String())
	result.Set(header.MetadataSource, path)

	observeResult(t, result)
	status := statusAccepted
	if !result.Passed() {
		status = statusRejected
		for n, msg := range result.Errors {
			if n == defaults.MaxReportedErrors {
				log.Warn("further errors omitted", "omitted", len(result.Errors)-n)
				break
			}
			log.Warn("validation error", "error", msg)
		}
	}
	observeFile(t, validator.ModeCollectAll, status, time.Since(start).Seconds())

	log.Info("catalogue validated",
		"status", result.Summary.Status,
		"errors", result.Summary.Errors,
		"duration", time.Since(start))
	return result, nil
}

func (i *Importer) run(ctx context.Context, t Type, path string, failFast bool, opts ...validator.Option) (*validator.ValidationResult, error) {
	constraints, err := i.registry.Get(t)
	if err != nil {
		return nil, err
	}

	doc, err := decode(ctx, path)
	if err != nil {
		return nil, err
	}

	opts = append(opts, validator.WithFailFast(failFast), validator.WithVersion(i.version))
	v := validator.New(constraints, opts...)
	return withContext(ctx, func() (*validator.ValidationResult, error) {
		return v.Validate(doc)
	})
}

func decode(ctx context.Context, path string) (*votable.VOTable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.DecodeTimeout)
	defer cancel()
	return withContext(ctx, func() (*votable.VOTable, error) {
		return votable.DecodeFile(path)
	})
}

type outcome[T any] struct {
	value T
	err   error
}

// withContext runs fn in its own goroutine and gives up when ctx ends.
// fn itself is not interrupted.
func withContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn()
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, errors.Wrap(errors.ErrCodeTimeout, "catalogue processing timed out", ctx.Err())
		}
		return zero, errors.Wrap(errors.ErrCodeInternal, "catalogue processing canceled", ctx.Err())
	}
}
