package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pterm/pterm"

	"github.com/hupe1980/hypercube/aggregate"
)

// printer writes command results as JSON or pterm tables.
type printer struct {
	w      io.Writer
	format string
}

func (p printer) json(v any) error {
	enc := gojson.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

func (p printer) title(s string) {
	fmt.Fprintln(p.w, pterm.LightCyan(s))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// measureColumns returns the union of measure names in first-seen order.
func measureColumns(ms ...*aggregate.Measures) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, m := range ms {
		for _, k := range m.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	return cols
}

func measureCells(m *aggregate.Measures, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if v, ok := m.Lookup(c); ok {
			out[i] = formatValue(v)
		}
	}
	return out
}

// factsString renders facts as sorted k=v pairs.
func factsString(facts map[string]string) string {
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + facts[k]
	}
	return strings.Join(parts, " ")
}
