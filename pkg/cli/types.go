/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/askap/vodeposit/pkg/catalogue"
)

// typeInfo describes one catalogue type for the types command.
type typeInfo struct {
	Name           string `json:"name" yaml:"name"`
	Title          string `json:"title" yaml:"title"`
	Params         int    `json:"params" yaml:"params"`
	Fields         int    `json:"fields" yaml:"fields"`
	RequiredFields int    `json:"requiredFields" yaml:"requiredFields"`
	FrequencyField string `json:"frequencyField,omitempty" yaml:"frequencyField,omitempty"`
}

type typeList []typeInfo

func (l typeList) TableColumns() []string {
	return []string{"TYPE", "TITLE", "PARAMS", "FIELDS", "REQUIRED", "FREQUENCY"}
}

func (l typeList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, t := range l {
		rows = append(rows, []string{
			t.Name,
			t.Title,
			strconv.Itoa(t.Params),
			strconv.Itoa(t.Fields),
			strconv.Itoa(t.RequiredFields),
			t.FrequencyField,
		})
	}
	return rows
}

func describeTypes(registry *catalogue.Registry) (typeList, error) {
	out := make(typeList, 0, len(catalogue.Types()))
	for _, t := range catalogue.Types() {
		set, err := registry.Get(t)
		if err != nil {
			return nil, err
		}
		required := 0
		for _, f := range set.Fields() {
			if !f.Optional {
				required++
			}
		}
		out = append(out, typeInfo{
			Name:           string(t),
			Title:          t.Title(),
			Params:         len(set.Params()),
			Fields:         len(set.Fields()),
			RequiredFields: required,
			FrequencyField: t.FrequencyField(),
		})
	}
	return out, nil
}

func typesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "types",
		EnableShellCompletion: true,
		Usage:                 "List the supported catalogue types",
		Description: `List every catalogue type with the number of PARAM and FIELD constraints
built in for it and the column used for its wavelength range.

  vodeposit types -t table`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			registry, err := catalogue.DefaultRegistry()
			if err != nil {
				return err
			}
			types, err := describeTypes(registry)
			if err != nil {
				return err
			}
			return serialize(ctx, cmd, outFormat, types)
		},
	}
}
