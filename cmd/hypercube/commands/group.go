package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hypercube"
	"github.com/hupe1980/hypercube/aggregate"
	"github.com/hupe1980/hypercube/cube"
)

type groupRow struct {
	Value string              `json:"value"`
	Cells int                 `json:"cells"`
	Sums  *aggregate.Measures `json:"sums"`
}

func newGroupCmd(a *app) *cobra.Command {
	var (
		by      string
		measure string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Sum the cells of every value of a dimension",
		Long: `Sum the cells of every value of a dimension.

Groups are listed in first-seen order. With --measure they are ordered by
descending sum of that measure and --limit keeps the first groups.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadCube(cmd.Context(), cmd.InOrStdin())
			if err != nil {
				return err
			}

			var groups []cube.Group
			hypercube.Timed(cmd.Context(), "group", func() *cube.Cube {
				if measure != "" {
					groups = c.SortedGroups(by, measure, limit)
				} else {
					groups = c.Groups(by)
					if limit > 0 && limit < len(groups) {
						groups = groups[:limit]
					}
				}
				return c
			}, hypercube.WithLogger(a.logger), hypercube.WithMetricsCollector(a.metrics))

			rows := make([]groupRow, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, groupRow{Value: g.Value, Cells: g.Cube.Len(), Sums: g.Cube.Sum(a.precision)})
			}

			p := printer{w: cmd.OutOrStdout(), format: a.format}
			if a.format == "json" {
				return p.json(rows)
			}

			sums := make([]*aggregate.Measures, len(rows))
			for i, r := range rows {
				sums[i] = r.Sums
			}
			cols := measureColumns(sums...)

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				line := append([]string{r.Value, strconv.Itoa(r.Cells)}, measureCells(r.Sums, cols)...)
				table = append(table, line)
			}
			return p.table(append([]string{by, "Cells"}, cols...), table)
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Dimension to group by")
	cmd.Flags().StringVar(&measure, "measure", "", "Order groups by the sum of this measure")
	cmd.Flags().IntVar(&limit, "limit", 0, "Keep at most this many groups (0 keeps all)")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}
