package commands

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/hypercube"
	"github.com/hupe1980/hypercube/aggregate"
	"github.com/hupe1980/hypercube/cube"
)

type topRow struct {
	Time     *int64              `json:"time,omitempty"`
	Facts    map[string]string   `json:"facts"`
	Measures *aggregate.Measures `json:"measures"`
}

func newTopCmd(a *app) *cobra.Command {
	var (
		measure string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the cells with the largest value of a measure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadCube(cmd.Context(), cmd.InOrStdin())
			if err != nil {
				return err
			}

			top := hypercube.Timed(cmd.Context(), "top", func() *cube.Cube {
				return c.SliceTop(limit, func(m map[string]float64) float64 {
					return -m[measure]
				})
			}, hypercube.WithLogger(a.logger), hypercube.WithMetricsCollector(a.metrics))

			rows := make([]topRow, 0, top.Len())
			for _, cl := range top.Cells() {
				rows = append(rows, topRow{
					Time:     cl.Time,
					Facts:    cl.Facts,
					Measures: aggregate.FromMap(cl.Measures),
				})
			}

			p := printer{w: cmd.OutOrStdout(), format: a.format}
			if a.format == "json" {
				return p.json(rows)
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{formatValue(r.Measures.Get(measure)), factsString(r.Facts)})
			}
			return p.table([]string{measure, "Facts"}, table)
		},
	}

	cmd.Flags().StringVar(&measure, "measure", "", "Measure to rank by")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of cells to list")
	_ = cmd.MarkFlagRequired("measure")
	return cmd
}
