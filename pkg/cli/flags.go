/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/askap/vodeposit/pkg/catalogue"
	"github.com/askap/vodeposit/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "type",
		Required: true,
		Usage:    fmt.Sprintf("catalogue type (supported: %s)", strings.Join(catalogue.TypeNames(), ", ")),
	}
}

func constraintsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "constraints",
		Aliases: []string{"c"},
		Usage:   "YAML or JSON constraint file replacing the built-in constraints of --type",
	}
}

func imageFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "image",
		Usage: "image file of the observation; when given, the imageFile PARAM must name one of them",
	}
}

func metricsFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write Prometheus metrics to this file when the command finishes",
	}
}

// parseOutputFormat rejects formats the serializer does not know.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
	return f, nil
}

// newImporter builds an importer for the --type of cmd, applying
// --constraints and --image.
func newImporter(cmd *cli.Command) (*catalogue.Importer, catalogue.Type, error) {
	t, err := catalogue.ParseType(cmd.String("type"))
	if err != nil {
		return nil, "", err
	}

	registry, err := catalogue.DefaultRegistry()
	if err != nil {
		return nil, "", err
	}
	if path := cmd.String("constraints"); path != "" {
		slog.Info("loading constraints", "path", path, "type", t)
		set, err := catalogue.LoadConstraintsFile(path)
		if err != nil {
			return nil, "", err
		}
		registry = registry.With(t, set)
	}

	imp, err := catalogue.NewImporter(
		catalogue.WithRegistry(registry),
		catalogue.WithImporterVersion(version),
		catalogue.WithImages(cmd.StringSlice("image")...),
	)
	if err != nil {
		return nil, "", err
	}
	return imp, t, nil
}

// serialize writes data to --output in the given format.
func serialize(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return ser.Serialize(ctx, data)
}

// writeMetrics honours --metrics-file. Failures are logged, not returned.
func writeMetrics(cmd *cli.Command) {
	path := cmd.String("metrics-file")
	if path == "" {
		return
	}
	if err := catalogue.WriteMetrics(path); err != nil {
		slog.Warn("failed to write metrics", "error", err)
	}
}
