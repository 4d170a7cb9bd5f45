package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/service"
)

const maxSuggestDistance = 3

type filterFlags struct {
	search     string
	year       string
	month      string
	priorities []string
	statuses   []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive substring of task name or ID")
	cmd.Flags().StringVar(&f.year, "year", "", `deadline year or "all"`)
	cmd.Flags().StringVar(&f.month, "month", "", `deadline month name or "all"`)
	cmd.Flags().StringSliceVar(&f.priorities, "priority", nil, "allowed priorities (default: every priority)")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "allowed statuses (default: every status)")
}

// query turns the flags into a service query. A multiselect flag counts as
// set only when given on the command line, so --priority= selects nothing.
func (f *filterFlags) query(cmd *cobra.Command) service.Query {
	return service.Query{
		Search:        f.search,
		Year:          f.year,
		Month:         f.month,
		Priorities:    f.priorities,
		PrioritiesSet: cmd.Flags().Changed("priority"),
		Statuses:      f.statuses,
		StatusesSet:   cmd.Flags().Changed("status"),
	}
}

// warnUnknown reports flag values the sheet never contains, with the
// closest known value when one is near enough.
func (f *filterFlags) warnUnknown(w io.Writer, opts model.FilterOptions) {
	check := func(kind string, values, known []string) {
		for _, v := range values {
			if v == "" || v == model.All || contains(known, v) {
				continue
			}
			if s, ok := closest(v, known); ok {
				fmt.Fprintf(w, "warning: no %s %q in the sheet, did you mean %q?\n", kind, v, s)
				continue
			}
			fmt.Fprintf(w, "warning: no %s %q in the sheet\n", kind, v)
		}
	}

	check("year", []string{f.year}, opts.Years)
	check("month", []string{f.month}, opts.Months)
	check("priority", f.priorities, opts.Priorities)
	check("status", f.statuses, opts.Statuses)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func closest(v string, known []string) (string, bool) {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(v), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, bestDist >= 0 && bestDist <= maxSuggestDistance
}
