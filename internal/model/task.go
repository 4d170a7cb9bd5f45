package model

import "time"

// Column names of the published sheet.
const (
	ColID          = "ID Tugas"
	ColName        = "Nama Tugas"
	ColDeadline    = "Deadline"
	ColCategory    = "Kategori"
	ColPriority    = "Prioritas"
	ColStatus      = "Status"
	ColDescription = "Deskripsi"
	ColNotes       = "Catatan"
)

// RequiredColumns must be present in every source table. Catatan is optional.
var RequiredColumns = []string{
	ColID, ColName, ColDeadline, ColCategory, ColPriority, ColStatus, ColDescription,
}

type Task struct {
	Row         int        `json:"row"`
	ID          string     `json:"task_id"`
	Name        string     `json:"name"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Description *string    `json:"description,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	MonthName   *string    `json:"month_name"`
	Year        *string    `json:"year"`
}

// Table is the base table: every task of one load, enriched with derived fields.
type Table struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Tasks    []Task    `json:"tasks"`
}

// RawRecord is one source row keyed by column name. Empty cells are absent.
type RawRecord map[string]string

type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

func (r RawRecord) Value(col string) (string, bool) {
	v, ok := r[col]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
