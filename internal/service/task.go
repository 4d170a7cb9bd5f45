package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/repo"
)

type Settings struct {
	DoneStatus  string
	TriageLimit int
	Location    *time.Location
	CreateURL   string
	UpdateBase  string
}

// Query carries the filter controls and selection of one interaction.
// Unset multiselects fall back to every value present in the base table.
type Query struct {
	Search        string
	Year          string
	Month         string
	Priorities    []string
	PrioritiesSet bool
	Statuses      []string
	StatusesSet   bool
	Row           *int
}

type TaskService struct {
	source   repo.TaskSource
	cache    *repo.TableCache
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

func NewTaskService(source repo.TaskSource, cache *repo.TableCache, settings Settings, logger *zap.Logger) *TaskService {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.TriageLimit <= 0 {
		settings.TriageLimit = 3
	}
	return &TaskService{
		source:   source,
		cache:    cache,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Table returns the base table, fetching it only when the cached copy expired.
func (s *TaskService) Table(ctx context.Context) (model.Table, error) {
	return s.cache.Get(ctx, s.source.Locator(), s.load)
}

// Reload discards the cached base table and loads it again.
func (s *TaskService) Reload(ctx context.Context) (model.Table, error) {
	s.cache.Invalidate(s.source.Locator())
	return s.Table(ctx)
}

func (s *TaskService) load(ctx context.Context) (model.Table, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		var loadErr *repo.LoadError
		if !errors.As(err, &loadErr) {
			err = &repo.LoadError{Source: s.source.Locator(), Err: err}
		}
		return model.Table{}, err
	}
	return model.Table{Tasks: Derive(raw, s.settings.Location)}, nil
}

func (s *TaskService) Triage(ctx context.Context) (model.Triage, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return model.Triage{}, err
	}
	return Triage(table.Tasks, s.now(), s.settings.DoneStatus, s.settings.TriageLimit), nil
}

func (s *TaskService) Options(ctx context.Context) (model.FilterOptions, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return model.FilterOptions{}, err
	}
	return Options(table.Tasks), nil
}

// View returns the filtered view the query selects, with update links.
func (s *TaskService) View(ctx context.Context, q Query) ([]model.ViewRow, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return s.rows(Filter(table.Tasks, q.filterState(table.Tasks))), nil
}

// Detail resolves row of the view the query selects.
func (s *TaskService) Detail(ctx context.Context, q Query, row int) (model.Detail, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return model.Detail{}, err
	}
	view := Filter(table.Tasks, q.filterState(table.Tasks))
	return Resolve(view, row, s.settings.UpdateBase)
}

// Dashboard runs one full rendering pass. A load failure returns the
// *repo.LoadError and nothing else.
func (s *TaskService) Dashboard(ctx context.Context, q Query) (model.Dashboard, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	filter := q.filterState(table.Tasks)
	view := Filter(table.Tasks, filter)

	d := model.Dashboard{
		TableID:   table.ID,
		LoadedAt:  table.LoadedAt,
		CreateURL: s.settings.CreateURL,
		Triage:    Triage(table.Tasks, s.now(), s.settings.DoneStatus, s.settings.TriageLimit),
		Options:   Options(table.Tasks),
		Filter:    filter,
		Rows:      s.rows(view),
	}

	if q.Row != nil {
		detail, err := Resolve(view, *q.Row, s.settings.UpdateBase)
		switch {
		case err == nil:
			row := *q.Row
			d.Selected = &row
			d.Detail = &detail
		case errors.Is(err, ErrSelectionOutOfRange):
			s.logger.Debug("clearing stale selection", zap.Int("row", *q.Row), zap.Int("view", len(view)))
		default:
			return model.Dashboard{}, err
		}
	}
	return d, nil
}

func (s *TaskService) rows(view []model.Task) []model.ViewRow {
	rows := make([]model.ViewRow, 0, len(view))
	for _, t := range view {
		rows = append(rows, model.ViewRow{Task: t, UpdateURL: UpdateLink(s.settings.UpdateBase, t.ID)})
	}
	return rows
}

func (q Query) filterState(tasks []model.Task) model.FilterState {
	f := DefaultFilter(tasks)
	f.Search = q.Search
	if q.Year != "" {
		f.Year = q.Year
	}
	if q.Month != "" {
		f.Month = q.Month
	}
	if q.PrioritiesSet {
		f.Priorities = nonNil(q.Priorities)
	}
	if q.StatusesSet {
		f.Statuses = nonNil(q.Statuses)
	}
	return f
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
