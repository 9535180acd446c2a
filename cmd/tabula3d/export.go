// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tabula3d/tabula3d/chart3d/echarts"
	"github.com/tabula3d/tabula3d/tabular"
)

func (a *app) exportCmd() *cobra.Command {
	var output, title string
	cmd := &cobra.Command{
		Use:   "export [data-file]",
		Short: "Export the chart as an interactive HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadData(a.cfg)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			cfg := a.cfg
			data := tabular.Normalize(raw, cfg.Axes())
			err = echarts.Export(w, data, cfg.ChartSpec(), echarts.Options{
				Title:    title,
				Width:    fmt.Sprintf("%dpx", cfg.Width),
				Height:   fmt.Sprintf("%dpx", cfg.Height),
				PointCap: cfg.Chart.PointCap,
			})
			if err != nil {
				return err
			}
			if output != "" {
				slog.Info("exported chart", "file", output, "chart", cfg.ChartSpec().Type)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "tabula3d", "page and chart title")
	return cmd
}
