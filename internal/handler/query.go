package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BuzzLyutic/taskboard/internal/service"
)

var errBadQuery = errors.New("bad query")

// parseQuery reads the sidebar controls from the URL. The dashboard form
// sends f=1 so that an untouched multiselect can be told apart from one the
// user emptied.
func parseQuery(values url.Values) (service.Query, error) {
	q := service.Query{
		Search: values.Get("q"),
		Year:   values.Get("year"),
		Month:  values.Get("month"),
	}

	submitted := values.Get("f") == "1"
	if v, ok := values["priority"]; ok || submitted {
		q.Priorities = v
		q.PrioritiesSet = true
	}
	if v, ok := values["status"]; ok || submitted {
		q.Statuses = v
		q.StatusesSet = true
	}

	if s := values.Get("row"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, errBadQuery
		}
		q.Row = &n
	}
	return q, nil
}

// withoutRow is the current query minus the selection, used to build row links.
func withoutRow(r *http.Request) url.Values {
	values := url.Values{}
	for k, v := range r.URL.Query() {
		if k == "row" {
			continue
		}
		values[k] = v
	}
	return values
}
