package service

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// Months lists the month selector values in calendar order.
var Months = func() []string {
	m := make([]string, 0, 12)
	for i := time.January; i <= time.December; i++ {
		m = append(m, i.String())
	}
	return m
}()

// Filter keeps the tasks matching every clause of f, in their original order.
// Missing priorities and statuses match nothing.
func Filter(tasks []model.Task, f model.FilterState) []model.Task {
	var match func(string) bool
	if f.Search != "" {
		fold := cases.Fold()
		needle := fold.String(norm.NFC.String(f.Search))
		match = func(s string) bool {
			return strings.Contains(fold.String(norm.NFC.String(s)), needle)
		}
	}
	priorities := toSet(f.Priorities)
	statuses := toSet(f.Statuses)

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if match != nil && !match(t.Name) && !match(t.ID) {
			continue
		}
		if f.Year != "" && f.Year != model.All && (t.Year == nil || *t.Year != f.Year) {
			continue
		}
		if f.Month != "" && f.Month != model.All && (t.MonthName == nil || *t.MonthName != f.Month) {
			continue
		}
		if _, ok := priorities[t.Priority]; !ok {
			continue
		}
		if _, ok := statuses[t.Status]; !ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// DefaultFilter is the filter that lets the whole base table through.
func DefaultFilter(tasks []model.Task) model.FilterState {
	return model.FilterState{
		Year:       model.All,
		Month:      model.All,
		Priorities: distinct(tasks, func(t model.Task) string { return t.Priority }),
		Statuses:   distinct(tasks, func(t model.Task) string { return t.Status }),
	}
}

// Options lists the selectable values of every sidebar control.
func Options(tasks []model.Task) model.FilterOptions {
	years := distinct(tasks, func(t model.Task) string {
		if t.Year == nil {
			return ""
		}
		return *t.Year
	})
	sort.Strings(years)

	return model.FilterOptions{
		Years:      years,
		Months:     Months,
		Priorities: distinct(tasks, func(t model.Task) string { return t.Priority }),
		Statuses:   distinct(tasks, func(t model.Task) string { return t.Status }),
	}
}

// distinct returns the non-empty values of field in first-appearance order.
func distinct(tasks []model.Task, field func(model.Task) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range tasks {
		v := field(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
