package service

import (
	"errors"
	"net/url"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

var ErrSelectionOutOfRange = errors.New("selection out of range")

const NoDescription = "No description"

// Resolve looks up position idx of the displayed (filtered) view.
func Resolve(view []model.Task, idx int, updateBase string) (model.Detail, error) {
	if idx < 0 || idx >= len(view) {
		return model.Detail{}, ErrSelectionOutOfRange
	}

	t := view[idx]
	d := model.Detail{
		Task:        t,
		Description: NoDescription,
		Notes:       t.Notes,
		UpdateURL:   UpdateLink(updateBase, t.ID),
	}
	if t.Description != nil {
		d.Description = *t.Description
	}
	return d, nil
}

// UpdateLink prefills the update form with the task id.
func UpdateLink(base, id string) string {
	return base + url.QueryEscape(id)
}
