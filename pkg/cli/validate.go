/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/askap/vodeposit/pkg/defaults"
	"github.com/askap/vodeposit/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Report every error in one or more catalogue files",
		ArgsUsage:             "FILE...",
		Description: `Validate VOTABLE catalogue files against the constraints of a catalogue type
without importing them. Every structural and value error is collected and
reported in document order, one report per file.

Files are checked concurrently, each by its own validator.

# Examples

Validate a continuum island catalogue:
  vodeposit validate --type continuum-island selavy-islands.xml

Validate several files against custom constraints, failing the command on errors:
  vodeposit validate --type continuum-component -c components.yaml --fail-on-error a.xml b.xml

Write a JSON report and export metrics:
  vodeposit validate --type spectral-line-emission -t json -o report.json --metrics-file vodeposit.prom hi.xml`,
		Flags: []cli.Flag{
			typeFlag(),
			constraintsFlag(),
			imageFlag(),
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any file fails validation",
			},
			outputFlag(),
			formatFlag(),
			metricsFileFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			files := cmd.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("at least one FILE is required")
			}

			imp, catType, err := newImporter(cmd)
			if err != nil {
				return err
			}
			defer writeMetrics(cmd)

			ctx, cancel := context.WithTimeout(ctx, defaults.ValidateTimeout)
			defer cancel()

			results := make([]*validator.ValidationResult, len(files))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(defaults.MaxConcurrentFiles)
			for i, file := range files {
				g.Go(func() error {
					result, err := imp.Validate(gctx, catType, file)
					if err != nil {
						return fmt.Errorf("failed to validate %q: %w", file, err)
					}
					results[i] = result
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if err := serialize(ctx, cmd, outFormat, results); err != nil {
				return fmt.Errorf("failed to serialize validation results: %w", err)
			}

			failed := 0
			for _, r := range results {
				if !r.Passed() {
					failed++
				}
			}
			slog.Info("validation completed",
				"type", catType,
				"files", len(files),
				"failed", failed)

			if cmd.Bool("fail-on-error") && failed > 0 {
				return fmt.Errorf("validation failed: %d of %d file(s) did not pass", failed, len(files))
			}
			return nil
		},
	}
}
