package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hypercube/aggregate"
)

type dimensionSummary struct {
	Name        string `json:"name"`
	Values      int    `json:"values"`
	Cardinality uint64 `json:"cardinality"`
	MemoryBytes uint64 `json:"memory_bytes"`
}

type summaryResult struct {
	Cells      int                 `json:"cells"`
	Timed      int                 `json:"timed"`
	Dimensions []dimensionSummary  `json:"dimensions"`
	Counts     *aggregate.Measures `json:"counts"`
	Sums       *aggregate.Measures `json:"sums"`
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show dimensions, cardinalities and measure sums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadCube(cmd.Context(), cmd.InOrStdin())
			if err != nil {
				return err
			}

			stats := c.Stats()
			res := summaryResult{
				Cells:      stats.Cells,
				Timed:      stats.Timed,
				Dimensions: make([]dimensionSummary, 0, len(stats.Dimensions)),
				Counts:     stats.Measures,
				Sums:       c.Sum(a.precision),
			}
			for _, d := range stats.Dimensions {
				res.Dimensions = append(res.Dimensions, dimensionSummary{
					Name:        d.Dimension,
					Values:      d.ValueCount,
					Cardinality: d.TotalCardinality,
					MemoryBytes: d.MemoryBytes,
				})
			}

			p := printer{w: cmd.OutOrStdout(), format: a.format}
			if a.format == "json" {
				return p.json(res)
			}

			p.title("Cells: " + strconv.Itoa(res.Cells) + " (" + strconv.Itoa(res.Timed) + " timed)")

			rows := make([][]string, 0, len(res.Dimensions))
			for _, d := range res.Dimensions {
				rows = append(rows, []string{
					d.Name,
					strconv.Itoa(d.Values),
					strconv.FormatUint(d.Cardinality, 10),
				})
			}
			if err := p.table([]string{"Dimension", "Values", "Cells"}, rows); err != nil {
				return err
			}

			rows = rows[:0]
			for name, sum := range res.Sums.All() {
				rows = append(rows, []string{name, formatValue(sum), formatValue(res.Counts.Get(name))})
			}
			return p.table([]string{"Measure", "Sum", "Cells"}, rows)
		},
	}
}
