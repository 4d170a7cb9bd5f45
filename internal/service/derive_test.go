package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

func TestParseDeadline(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{name: "zero padded day first", input: "05/03/2024", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "single digits", input: "5/3/2024", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "dashes", input: "31-12-2025", want: ptrTime(time.Date(2025, 12, 31, 0, 0, 0, 0, jakarta))},
		{name: "dots", input: "1.2.2026", want: ptrTime(time.Date(2026, 2, 1, 0, 0, 0, 0, jakarta))},
		{name: "with time", input: "05/03/2024 14:30:00", want: ptrTime(time.Date(2024, 3, 5, 14, 30, 0, 0, jakarta))},
		{name: "iso", input: "2024-03-05", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "month name", input: "5 March 2024", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "two digit year", input: "5/3/24", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "surrounding spaces", input: "  05/03/2024 ", want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta))},
		{name: "empty", input: "", want: nil},
		{name: "garbage", input: "bukan tanggal", want: nil},
		{name: "impossible day", input: "32/01/2024", want: nil},
		{name: "month first is not accepted when day > 12", input: "12/31/2024", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDeadline(tt.input, jakarta)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestDerive(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{model.ColID, model.ColName, model.ColDeadline, model.ColStatus, model.ColDescription},
		Rows: []model.RawRecord{
			{model.ColID: "T1", model.ColName: "A", model.ColDeadline: "01/01/2024", model.ColStatus: "Selesai", model.ColDescription: "desc"},
			{model.ColID: "T2", model.ColName: "B", model.ColDeadline: "not a date", model.ColStatus: "Open"},
			{model.ColID: "T3", model.ColName: "C"},
			{model.ColID: "T4", model.ColName: "D", model.ColDeadline: "15/08/2025", model.ColNotes: "note"},
		},
	}

	tasks := Derive(raw, time.UTC)
	require.Len(t, tasks, 4, "same cardinality")

	for i, task := range tasks {
		assert.Equal(t, i, task.Row)
		assert.Equal(t, raw.Rows[i][model.ColID], task.ID, "same order")
		assert.Equal(t, task.Deadline == nil, task.MonthName == nil, "month nil iff deadline nil")
		assert.Equal(t, task.Deadline == nil, task.Year == nil, "year nil iff deadline nil")
	}

	assert.Equal(t, "January", *tasks[0].MonthName)
	assert.Equal(t, "2024", *tasks[0].Year)
	assert.Equal(t, "desc", *tasks[0].Description)
	assert.Nil(t, tasks[0].Notes)

	assert.Nil(t, tasks[1].Deadline)
	assert.Nil(t, tasks[1].Description)
	assert.Nil(t, tasks[2].Deadline)
	assert.Empty(t, tasks[2].Status)

	assert.Equal(t, "August", *tasks[3].MonthName)
	assert.Equal(t, "2025", *tasks[3].Year)
	assert.Equal(t, "note", *tasks[3].Notes)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
