package model

import "time"

// All is the "no restriction" value of the year and month selectors.
const All = "all"

type FilterState struct {
	Search     string   `json:"search"`
	Year       string   `json:"year"`
	Month      string   `json:"month"`
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
}

type FilterOptions struct {
	Years      []string `json:"years"`
	Months     []string `json:"months"`
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
}

type Triage struct {
	Overdue  []Task `json:"overdue"`
	Upcoming []Task `json:"upcoming"`
}

type Detail struct {
	Task        Task    `json:"task"`
	Description string  `json:"description"`
	Notes       *string `json:"notes,omitempty"`
	UpdateURL   string  `json:"update_url"`
}

// ViewRow is a row of the displayed table.
type ViewRow struct {
	Task
	UpdateURL string `json:"update_url"`
}

// Dashboard is everything a single rendering pass produces.
type Dashboard struct {
	TableID   string        `json:"table_id"`
	LoadedAt  time.Time     `json:"loaded_at"`
	CreateURL string        `json:"create_url"`
	Triage    Triage        `json:"triage"`
	Options   FilterOptions `json:"options"`
	Filter    FilterState   `json:"filter"`
	Rows      []ViewRow     `json:"rows"`
	Selected  *int          `json:"selected,omitempty"`
	Detail    *Detail       `json:"detail,omitempty"`
}
