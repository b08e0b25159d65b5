/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func importCmd() *cli.Command {
	return &cli.Command{
		Name:                  "import",
		EnableShellCompletion: true,
		Usage:                 "Convert a catalogue file to typed entries, stopping at the first error",
		ArgsUsage:             "FILE",
		Description: `Import a VOTABLE catalogue file. The file is validated in fail-fast mode: the
first error rejects it and the command exits non-zero with that error.
Otherwise the typed catalogue is written: PARAM metadata, the image file,
the wavelength range of the frequency column and one entry per row.

# Examples

Import a continuum component catalogue as a table:
  vodeposit import --type continuum-component -t table selavy-components.xml

Import with the observation's image list enforced:
  vodeposit import --type continuum-island --image image.i.SB1234.cont.fits -o islands.yaml islands.xml`,
		Flags: []cli.Flag{
			typeFlag(),
			constraintsFlag(),
			imageFlag(),
			outputFlag(),
			formatFlag(),
			metricsFileFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 1 {
				return fmt.Errorf("exactly one FILE is required, got %d", cmd.Args().Len())
			}
			file := cmd.Args().First()

			imp, catType, err := newImporter(cmd)
			if err != nil {
				return err
			}
			defer writeMetrics(cmd)

			cat, err := imp.Import(ctx, catType, file)
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", file, err)
			}

			if err := serialize(ctx, cmd, outFormat, cat); err != nil {
				return fmt.Errorf("failed to serialize catalogue: %w", err)
			}
			return nil
		},
	}
}
