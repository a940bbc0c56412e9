// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package export

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// ChartDataset builds the grouped bar chart payload from aggregate stats.
//
// # Description
//
// Operations appear in the fixed order [keygen, sign, verify]; there is one
// series per algorithm, in display order. A cell whose pair has no successful
// trials is rendered as 0 on the chart axis. The aggregator's "no data" has
// no numeric value, so the chart layer substitutes zero.
func ChartDataset(flat map[datatypes.StatKey]datatypes.AggregateStat) datatypes.ChartDataset {
	ops := datatypes.Operations()
	ds := datatypes.ChartDataset{Labels: ops}

	profiles := make(map[datatypes.Algorithm]string)
	for _, p := range datatypes.Profiles() {
		profiles[p.Code] = p.DisplayName
	}

	for _, alg := range datatypes.Algorithms() {
		series := datatypes.ChartSeries{
			Algorithm: alg,
			Label:     profiles[alg],
			MeanTimes: make([]float64, len(ops)),
		}
		for i, op := range ops {
			if stat, ok := flat[datatypes.StatKey{Algorithm: alg, Operation: op}]; ok {
				series.MeanTimes[i] = stat.MeanExecutionTimeMs
			}
			// missing cell stays 0
		}
		ds.Series = append(ds.Series, series)
	}
	return ds
}

// RenderPNG draws the dataset as a grouped bar chart.
//
// # Outputs
//
//   - []byte: PNG image, 6x4 inches at default DPI.
//   - error: plotting failure (empty datasets still render an empty chart).
func RenderPNG(ds datatypes.ChartDataset) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Mean Execution Time by Operation"
	p.Y.Label.Text = "time (ms)"
	p.Legend.Top = true

	barWidth := vg.Points(24)
	offset := -barWidth * vg.Length(len(ds.Series)-1) / 2

	for i, series := range ds.Series {
		bars, err := plotter.NewBarChart(plotter.Values(series.MeanTimes), barWidth)
		if err != nil {
			return nil, fmt.Errorf("build bar series %s: %w", series.Algorithm, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + barWidth*vg.Length(i)
		p.Add(bars)
		p.Legend.Add(series.Label, bars)
	}

	labels := make([]string, len(ds.Labels))
	for i, op := range ds.Labels {
		labels[i] = string(op)
	}
	p.NominalX(labels...)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}
