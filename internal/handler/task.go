package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/repo"
	"github.com/BuzzLyutic/taskboard/internal/service"
	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

type listResponse struct {
	TableID string            `json:"table_id"`
	Count   int               `json:"count"`
	Filter  model.FilterState `json:"filter"`
	Tasks   []model.ViewRow   `json:"tasks"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	q.Row = nil

	d, err := h.service.Dashboard(r.Context(), q)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, listResponse{
		TableID: d.TableID,
		Count:   len(d.Rows),
		Filter:  d.Filter,
		Tasks:   d.Rows,
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "row must be an integer")
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	detail, err := h.service.Detail(r.Context(), q, row)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, detail)
}

func (h *TaskHandler) Triage(w http.ResponseWriter, r *http.Request) {
	triage, err := h.service.Triage(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, triage)
}

func (h *TaskHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, opts)
}

type reloadResponse struct {
	TableID  string    `json:"table_id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Tasks    int       `json:"tasks"`
}

func (h *TaskHandler) Reload(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Reload(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("hard reload", zap.String("table_id", table.ID))
	respond.JSON(w, r, http.StatusOK, reloadResponse{
		TableID:  table.ID,
		Source:   table.Source,
		LoadedAt: table.LoadedAt,
		Tasks:    len(table.Tasks),
	})
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var loadErr *repo.LoadError
	switch {
	case errors.As(err, &loadErr):
		h.logger.Warn("load failed", zap.Error(err))
		respond.Error(w, r, http.StatusBadGateway, fmt.Sprintf("failed to load data: %v", err))
	case errors.Is(err, service.ErrSelectionOutOfRange):
		respond.Error(w, r, http.StatusNotFound, "selection out of range")
	case errors.Is(err, errBadQuery):
		respond.Error(w, r, http.StatusBadRequest, "row must be an integer")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
