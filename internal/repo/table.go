package repo

import (
	"strings"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

const bom = "\ufeff"

// buildRawTable turns a header row and data rows into a RawTable, checking
// that every required column is present.
func buildRawTable(source string, header []string, rows [][]string) (model.RawTable, error) {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		cols[i] = strings.TrimSpace(h)
	}

	if missing := missingColumns(cols); len(missing) > 0 {
		return model.RawTable{}, loadErr(source, ErrMissingColumn, "%s", strings.Join(missing, ", "))
	}

	table := model.RawTable{
		Columns: cols,
		Rows:    make([]model.RawRecord, 0, len(rows)),
	}
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		rec := make(model.RawRecord, len(cols))
		for i, col := range cols {
			if col == "" || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				rec[col] = v
			}
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func missingColumns(cols []string) []string {
	present := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		present[c] = struct{}{}
	}
	var missing []string
	for _, req := range model.RequiredColumns {
		if _, ok := present[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
