package commands

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hypercube"
	"github.com/hupe1980/hypercube/aggregate"
	"github.com/hupe1980/hypercube/cube"
)

type sliceResult struct {
	Query cube.Query          `json:"query"`
	Dice  bool                `json:"dice"`
	Cells int                 `json:"cells"`
	Sums  *aggregate.Measures `json:"sums"`
}

// parseQuery turns k=v pairs into a query. A dimension given twice keeps the
// last value.
func parseQuery(pairs []string) (cube.Query, error) {
	q := make(cube.Query, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--where %q: want dimension=value", pair)
		}
		q[k] = v
	}
	return q, nil
}

func newSliceCmd(a *app) *cobra.Command {
	var (
		where    []string
		dice     bool
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Sum the cells matching fact constraints",
		Long: `Sum the cells matching every --where constraint.

With --dice the complement is summed instead: every cell not matched by the
constraints. --from and --to (RFC 3339) further restrict to timed cells in
the half-open interval [from, to).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := parseQuery(where)
			if err != nil {
				return err
			}

			c, err := a.loadCube(cmd.Context(), cmd.InOrStdin())
			if err != nil {
				return err
			}

			op := "slice"
			if dice {
				op = "dice"
			}
			out := hypercube.Timed(cmd.Context(), op, func() *cube.Cube {
				if dice {
					return c.Dice(q)
				}
				return c.Slice(q)
			}, hypercube.WithLogger(a.logger), hypercube.WithMetricsCollector(a.metrics))

			if from != "" || to != "" {
				lo, hi, err := parseRange(from, to)
				if err != nil {
					return err
				}
				out = out.SliceTime(lo, hi)
			}

			res := sliceResult{Query: q, Dice: dice, Cells: out.Len(), Sums: out.Sum(a.precision)}

			p := printer{w: cmd.OutOrStdout(), format: a.format}
			if a.format == "json" {
				return p.json(res)
			}

			p.title(fmt.Sprintf("%s %s: %d cells", op, factsString(q), res.Cells))
			rows := make([][]string, 0, res.Sums.Len())
			for name, sum := range res.Sums.All() {
				rows = append(rows, []string{name, formatValue(sum)})
			}
			return p.table([]string{"Measure", "Sum"}, rows)
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "Constraint dimension=value (repeatable)")
	cmd.Flags().BoolVar(&dice, "dice", false, "Sum the cells not matching the constraints")
	cmd.Flags().StringVar(&from, "from", "", "Keep cells at or after this RFC 3339 time")
	cmd.Flags().StringVar(&to, "to", "", "Keep cells before this RFC 3339 time")
	return cmd
}

// parseRange converts RFC 3339 bounds to Unix milliseconds. Missing bounds
// are open.
func parseRange(from, to string) (int64, int64, error) {
	lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return 0, 0, fmt.Errorf("--from: %w", err)
		}
		lo = t.UnixMilli()
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return 0, 0, fmt.Errorf("--to: %w", err)
		}
		hi = t.UnixMilli()
	}
	return lo, hi, nil
}
