// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tabula3d/tabula3d/tabular"
	"gopkg.in/yaml.v3"
)

func (a *app) normalizeCmd() *cobra.Command {
	var capped, table bool
	cmd := &cobra.Command{
		Use:   "normalize [data-file]",
		Short: "Print the normalized labels and series as YAML or a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadData(a.cfg)
			if err != nil {
				return err
			}
			data := tabular.Normalize(raw, a.cfg.Axes())
			if capped {
				data = data.Capped(a.cfg.Chart.PointCap)
			}
			if table {
				writeTable(cmd.OutOrStdout(), data)
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(data); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&capped, "capped", false, "cap the points per series as drawn")
	cmd.Flags().BoolVar(&table, "table", false, "print a text table with one row per label")
	return cmd
}

// writeTable prints one row per label with a column per series.
func writeTable(w io.Writer, data tabular.Data) {
	tw := tablewriter.NewWriter(w)
	header := []string{"label"}
	for _, s := range data.Series {
		header = append(header, s.Label)
	}
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(header)
	for i, label := range data.Labels {
		row := []string{label}
		for _, s := range data.Series {
			cell := ""
			if i < len(s.Values) {
				cell = strconv.FormatFloat(s.Values[i], 'g', -1, 64)
			}
			row = append(row, cell)
		}
		tw.Append(row)
	}
	tw.Render()
}
