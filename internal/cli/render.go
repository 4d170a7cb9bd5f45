package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

const (
	colorRed     lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorTeal    lipgloss.Color = "#94e2d5"
	colorOverlay lipgloss.Color = "#7f849c"
	colorSurface lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(colorRed)
	soonStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	infoStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(18)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format: %s", format)
}

// triageItem is the flat shape of a call-out entry used by the json and
// yaml outputs.
type triageItem struct {
	ID       string `json:"task_id" yaml:"task_id"`
	Name     string `json:"name" yaml:"name"`
	Deadline string `json:"deadline" yaml:"deadline"`
}

type triageReport struct {
	Overdue  []triageItem `json:"overdue" yaml:"overdue"`
	Upcoming []triageItem `json:"upcoming" yaml:"upcoming"`
}

func newTriageReport(tr model.Triage) triageReport {
	items := func(tasks []model.Task) []triageItem {
		out := make([]triageItem, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, triageItem{ID: t.ID, Name: t.Name, Deadline: formatDate(t.Deadline, "2006-01-02")})
		}
		return out
	}
	return triageReport{Overdue: items(tr.Overdue), Upcoming: items(tr.Upcoming)}
}

func renderTriage(w io.Writer, tr model.Triage) {
	fmt.Fprintln(w, titleStyle.Render("Top 3 overdue tasks"))
	if len(tr.Overdue) == 0 {
		fmt.Fprintln(w, "  "+okStyle.Render("No overdue tasks!"))
	}
	for _, t := range tr.Overdue {
		fmt.Fprintln(w, "  "+overdueStyle.Render(callout(t)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Next 3 deadlines"))
	if len(tr.Upcoming) == 0 {
		fmt.Fprintln(w, "  "+infoStyle.Render("No urgent deadlines yet."))
	}
	for _, t := range tr.Upcoming {
		fmt.Fprintln(w, "  "+soonStyle.Render(callout(t)))
	}
}

func callout(t model.Task) string {
	return fmt.Sprintf("%s - %s (Deadline: %s)", t.ID, t.Name, formatDate(t.Deadline, "02 Jan 2006"))
}

func renderRows(w io.Writer, rows []model.ViewRow) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSurface)).
		Headers("#", "ID", "Deadline", "Task", "Category", "Priority", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, r := range rows {
		tbl.Row(fmt.Sprint(i), r.ID, formatDate(r.Deadline, "02/01/2006"), r.Name, r.Category, r.Priority, r.Status)
	}

	fmt.Fprintln(w, tbl.String())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d tasks found", len(rows))))
}

func renderDetail(w io.Writer, d model.Detail) {
	line := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}

	fmt.Fprintln(w, titleStyle.Render("Detail: "+d.Task.Name))
	line("Task ID:", d.Task.ID)
	line("Category:", d.Task.Category)
	line("Priority:", d.Task.Priority)
	line("Status:", d.Task.Status)
	line("Deadline:", formatDate(d.Task.Deadline, "02 Jan 2006"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Task description:"))
	fmt.Fprintln(w, infoStyle.Render(d.Description))
	if d.Notes != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render("Additional notes: "+*d.Notes))
	}

	fmt.Fprintln(w)
	line("Update:", d.UpdateURL)
}
