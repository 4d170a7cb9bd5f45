package service

import (
	"sort"
	"time"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// Triage picks the earliest open tasks on each side of now. Tasks whose
// status equals done, or that have no deadline, never appear.
func Triage(tasks []model.Task, now time.Time, done string, limit int) model.Triage {
	var overdue, upcoming []model.Task
	for _, t := range tasks {
		if t.Deadline == nil || t.Status == done {
			continue
		}
		if t.Deadline.Before(now) {
			overdue = append(overdue, t)
		} else {
			upcoming = append(upcoming, t)
		}
	}
	return model.Triage{
		Overdue:  earliest(overdue, limit),
		Upcoming: earliest(upcoming, limit),
	}
}

func earliest(tasks []model.Task, limit int) []model.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Deadline.Before(*tasks[j].Deadline)
	})
	if limit < 0 {
		limit = 0
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}
