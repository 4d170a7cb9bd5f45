package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/repo"
	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"date": func(t *time.Time, layout string) string {
		if t == nil {
			return ""
		}
		return t.Format(layout)
	},
	"has": func(values []string, v string) bool {
		for _, x := range values {
			if x == v {
				return true
			}
		}
		return false
	},
}).ParseFS(templateFS, "templates/*.html"))

type pageRow struct {
	model.ViewRow
	Index    int
	Link     string
	Selected bool
}

type dashboardPage struct {
	model.Dashboard
	Table        []pageRow
	ReloadAction string
}

type errorPage struct {
	Message string
}

// Dashboard renders the whole page: call-outs, sidebar, table and the detail
// of the selected row. A stale selection is dropped silently.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		q.Row = nil
	}

	d, err := h.service.Dashboard(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := dashboardPage{
		Dashboard:    d,
		Table:        make([]pageRow, 0, len(d.Rows)),
		ReloadAction: "/reload",
	}
	if qs := withoutRow(r).Encode(); qs != "" {
		page.ReloadAction += "?" + qs
	}
	for i, row := range d.Rows {
		link := withoutRow(r)
		link.Set("row", strconv.Itoa(i))
		page.Table = append(page.Table, pageRow{
			ViewRow:  row,
			Index:    i,
			Link:     "/?" + link.Encode(),
			Selected: d.Selected != nil && *d.Selected == i,
		})
	}

	if err := respond.HTML(w, r, http.StatusOK, pages, "dashboard.html", page); err != nil {
		h.logger.Error("render dashboard", zap.Error(err))
	}
}

// ReloadPage is the "refresh data" button: hard reload, then back to the
// same filtered view.
func (h *TaskHandler) ReloadPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Reload(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}
	target := "/"
	if qs := r.URL.RawQuery; qs != "" {
		target += "?" + qs
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *TaskHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := "Something went wrong."
	var loadErr *repo.LoadError
	if errors.As(err, &loadErr) {
		code = http.StatusBadGateway
		msg = "Failed to load data. Make sure the sheet link is correct and public. Error: " + err.Error()
		h.logger.Warn("load failed", zap.Error(err))
	} else {
		h.logger.Error("internal error", zap.Error(err))
	}

	if rerr := respond.HTML(w, r, code, pages, "error.html", errorPage{Message: msg}); rerr != nil {
		h.logger.Error("render error page", zap.Error(rerr))
	}
}
