package repo

import (
	"context"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// TaskSource fetches the raw task sheet from wherever it is published.
type TaskSource interface {
	Locator() string
	Fetch(ctx context.Context) (model.RawTable, error)
}
