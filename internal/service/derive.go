package service

import (
	"strings"
	"time"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// Day-first layouts accepted for the Deadline column, tried in order.
// Single-digit day/month layouts also match zero-padded input.
var deadlineLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2/1/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDeadline parses a day-first date string in loc. Anything it cannot
// read yields nil.
func ParseDeadline(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// Derive turns raw rows into tasks with parsed deadlines and the month/year
// fields that go with them. Order and cardinality are preserved.
func Derive(raw model.RawTable, loc *time.Location) []model.Task {
	tasks := make([]model.Task, 0, len(raw.Rows))
	for i, rec := range raw.Rows {
		t := model.Task{
			Row:      i,
			ID:       rec[model.ColID],
			Name:     rec[model.ColName],
			Category: rec[model.ColCategory],
			Priority: rec[model.ColPriority],
			Status:   rec[model.ColStatus],
		}
		if v, ok := rec.Value(model.ColDescription); ok {
			t.Description = &v
		}
		if v, ok := rec.Value(model.ColNotes); ok {
			t.Notes = &v
		}

		t.Deadline = ParseDeadline(rec[model.ColDeadline], loc)
		if t.Deadline != nil {
			month := t.Deadline.Month().String()
			year := t.Deadline.Format("2006")
			t.MonthName = &month
			t.Year = &year
		}
		tasks = append(tasks, t)
	}
	return tasks
}
